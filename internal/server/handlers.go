package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindbackup/mindbackup/internal/brain"
	"github.com/mindbackup/mindbackup/internal/gateway"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleListMemories(w http.ResponseWriter, r *http.Request) {
	user := s.user(r)
	query := r.URL.Query().Get("q")
	typeFilter := brain.MemoryType(r.URL.Query().Get("type"))
	if typeFilter != "" && !brain.ValidMemoryType(typeFilter) {
		writeError(w, http.StatusBadRequest, "unknown memory type")
		return
	}

	memories := s.brain.Memories.Find(user, query, typeFilter)
	if memories == nil {
		memories = []brain.Memory{}
	}
	writeJSON(w, http.StatusOK, memories)
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	forced := brain.MemoryType(req.Type)
	if req.Type != "" && !brain.ValidMemoryType(forced) {
		writeError(w, http.StatusBadRequest, "unknown memory type")
		return
	}

	m := s.gatewayCapture(r, req.Text, forced)
	if err := s.brain.AddMemory(s.user(r), m); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdateMemory(w http.ResponseWriter, r *http.Request) {
	var patch brain.MemoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user := s.user(r)
	id := chi.URLParam(r, "id")
	changed, err := s.brain.UpdateMemory(user, id, patch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !changed {
		writeError(w, http.StatusNotFound, "memory not found")
		return
	}

	m, _ := s.brain.Memories.Get(user, id)
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleToggleMemory(w http.ResponseWriter, r *http.Request) {
	user := s.user(r)
	id := chi.URLParam(r, "id")

	changed, err := s.brain.ToggleTask(user, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !changed {
		// Unknown id or a memory without metadata: both are no-ops.
		writeError(w, http.StatusNotFound, "nothing to toggle")
		return
	}

	m, _ := s.brain.Memories.Get(user, id)
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	removed, err := s.brain.DeleteMemory(s.user(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "memory not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.Profiles.Load(s.user(r)))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch brain.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	p, err := s.brain.Profiles.Update(s.user(r), patch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user := s.user(r)
	stats := s.brain.Stats(user)
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":       stats,
		"personality": brain.SelectPersonality(stats),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"online":      s.net.Online(),
		"personality": s.brain.Personality(s.user(r)),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	user := s.user(r)
	memories := s.brain.Memories.Load(user)
	history := s.brain.Chat.Recent(user, 8)
	profile := s.brain.Profiles.Load(user)
	personality := s.brain.Personality(user)

	reply := s.gw.Chat(r.Context(), req.Message, memories, history, profile, personality)

	now := s.now()
	_ = s.brain.Chat.Append(user,
		brain.ChatMessage{ID: s.newID(), Role: "user", Text: req.Message, Timestamp: now},
		brain.ChatMessage{ID: s.newID(), Role: "ai", Text: reply, Timestamp: s.now()},
	)

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	user := s.user(r)
	tasks := s.brain.Memories.PendingTasks(user)
	profile := s.brain.Profiles.Load(user)

	sched := s.gw.Schedule(r.Context(), tasks, profile)
	writeJSON(w, http.StatusOK, map[string]any{"schedule": sched})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image    string `json:"image"` // base64, no data-URL prefix
		MimeType string `json:"mimeType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		writeError(w, http.StatusBadRequest, "image is required")
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/jpeg"
	}

	analysis := s.gw.AnalyzeImage(r.Context(), gateway.ImagePayload{
		MimeType: req.MimeType,
		Base64:   req.Image,
	})

	m := brain.Memory{
		ID:        s.newID(),
		Content:   analysis.Text,
		Type:      brain.TypeDocument,
		Tags:      append(analysis.Tags, "scanned-doc"),
		CreatedAt: s.now(),
		Metadata:  &brain.Metadata{Priority: brain.PriorityMedium},
	}
	if err := s.brain.AddMemory(s.user(r), m); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
