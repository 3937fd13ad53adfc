package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/brain"
	"github.com/mindbackup/mindbackup/internal/gateway"
	"github.com/mindbackup/mindbackup/internal/notify"
	"github.com/mindbackup/mindbackup/internal/storage"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(context.Context, gateway.CompletionRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubCompleter) Name() string { return "stub" }

func setupServer(t *testing.T, stub *stubCompleter) (*Server, *brain.Brain) {
	t.Helper()
	b := brain.New(storage.NewMemKV(), zerolog.Nop())
	gw := gateway.NewGateway(stub, nil, 4000, zerolog.Nop())
	return New(b, gw, notify.Static(true), "Guest", zerolog.Nop()), b
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestServer_CaptureAndList(t *testing.T) {
	stub := &stubCompleter{reply: `{"type":"TASK","refinedContent":"Buy milk","tags":["errand"],"metadata":{"priority":"HIGH"}}`}
	s, _ := setupServer(t, stub)

	rec := doRequest(t, s, http.MethodPost, "/api/memories", `{"text":"buy milk tomorrow"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("capture status: %d body %s", rec.Code, rec.Body)
	}

	var created brain.Memory
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Type != brain.TypeTask || created.Content != "Buy milk" {
		t.Errorf("created: %+v", created)
	}
	if created.Metadata == nil || created.Metadata.Status != brain.StatusPending {
		t.Errorf("task must start pending, got %+v", created.Metadata)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/memories?q=milk", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status: %d", rec.Code)
	}
	var list []brain.Memory
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list: %+v", list)
	}
}

func TestServer_CaptureOfflineFallback(t *testing.T) {
	s, _ := setupServer(t, &stubCompleter{err: errors.New("offline")})

	rec := doRequest(t, s, http.MethodPost, "/api/memories", `{"text":"buy milk tomorrow"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d", rec.Code)
	}

	var created brain.Memory
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created.Type != brain.TypeNote || created.Content != "buy milk tomorrow" {
		t.Errorf("offline capture must store raw note, got %+v", created)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "offline-capture" {
		t.Errorf("tags: %v", created.Tags)
	}
}

func TestServer_CaptureForcedTypeSkipsGateway(t *testing.T) {
	// The stub would return TASK; a forced NOTE must not consult it.
	stub := &stubCompleter{reply: `{"type":"TASK","refinedContent":"wrong"}`}
	s, _ := setupServer(t, stub)

	rec := doRequest(t, s, http.MethodPost, "/api/memories", `{"text":"remember this","type":"NOTE"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d", rec.Code)
	}
	var created brain.Memory
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created.Type != brain.TypeNote || created.Content != "remember this" {
		t.Errorf("got %+v", created)
	}
}

func TestServer_CaptureValidation(t *testing.T) {
	s, _ := setupServer(t, &stubCompleter{})

	if rec := doRequest(t, s, http.MethodPost, "/api/memories", `{"text":""}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty text: %d", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodPost, "/api/memories", `{"text":"x","type":"BOGUS"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bogus type: %d", rec.Code)
	}
}

func TestServer_ToggleMemory(t *testing.T) {
	s, b := setupServer(t, &stubCompleter{})

	b.AddMemory("Guest", brain.Memory{
		ID: "task1", Type: brain.TypeTask, Content: "do it",
		Metadata: &brain.Metadata{Status: brain.StatusPending},
	})
	b.AddMemory("Guest", brain.Memory{ID: "bare", Type: brain.TypeNote, Content: "note"})

	rec := doRequest(t, s, http.MethodPost, "/api/memories/task1/toggle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status: %d", rec.Code)
	}
	var m brain.Memory
	json.Unmarshal(rec.Body.Bytes(), &m)
	if m.Metadata.Status != brain.StatusDone {
		t.Errorf("status: %s", m.Metadata.Status)
	}

	// No metadata: toggling is a no-op surfaced as 404.
	if rec := doRequest(t, s, http.MethodPost, "/api/memories/bare/toggle", ""); rec.Code != http.StatusNotFound {
		t.Errorf("bare toggle: %d", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodPost, "/api/memories/missing/toggle", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing toggle: %d", rec.Code)
	}
}

func TestServer_UpdateAndDeleteMemory(t *testing.T) {
	s, b := setupServer(t, &stubCompleter{})
	b.AddMemory("Guest", brain.Memory{ID: "m1", Type: brain.TypeNote, Content: "old"})

	rec := doRequest(t, s, http.MethodPatch, "/api/memories/m1", `{"content":"new"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: %d", rec.Code)
	}
	var m brain.Memory
	json.Unmarshal(rec.Body.Bytes(), &m)
	if m.Content != "new" {
		t.Errorf("content: %q", m.Content)
	}

	if rec := doRequest(t, s, http.MethodPatch, "/api/memories/nope", `{"content":"x"}`); rec.Code != http.StatusNotFound {
		t.Errorf("update missing: %d", rec.Code)
	}

	if rec := doRequest(t, s, http.MethodDelete, "/api/memories/m1", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete: %d", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodDelete, "/api/memories/m1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("delete again: %d", rec.Code)
	}
}

func TestServer_ProfileRoundtrip(t *testing.T) {
	s, _ := setupServer(t, &stubCompleter{})

	rec := doRequest(t, s, http.MethodGet, "/api/profile", "")
	var p brain.UserProfile
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p != brain.DefaultProfile() {
		t.Errorf("fresh profile: %+v", p)
	}

	rec = doRequest(t, s, http.MethodPut, "/api/profile", `{"voiceTone":"strict"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: %d", rec.Code)
	}
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.VoiceTone != "strict" {
		t.Errorf("voiceTone: %q", p.VoiceTone)
	}
	if p.WakeTime != brain.DefaultProfile().WakeTime {
		t.Errorf("untouched field changed: %q", p.WakeTime)
	}
}

func TestServer_StatsAndStatus(t *testing.T) {
	s, b := setupServer(t, &stubCompleter{})
	b.AddMemory("Guest", brain.Memory{
		ID: "t1", Type: brain.TypeTask,
		Metadata: &brain.Metadata{Status: brain.StatusDone},
	})

	rec := doRequest(t, s, http.MethodGet, "/api/stats", "")
	var statsResp struct {
		Stats       brain.UserStats       `json:"stats"`
		Personality brain.PersonalityMode `json:"personality"`
	}
	json.Unmarshal(rec.Body.Bytes(), &statsResp)
	if statsResp.Stats.TasksCompleted != 1 || statsResp.Personality != brain.PersonalityFriendly {
		t.Errorf("stats: %+v", statsResp)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/status", "")
	var statusResp struct {
		Online bool `json:"online"`
	}
	json.Unmarshal(rec.Body.Bytes(), &statusResp)
	if !statusResp.Online {
		t.Error("expected online=true from static notifier")
	}
}

func TestServer_ChatAppendsTranscript(t *testing.T) {
	s, b := setupServer(t, &stubCompleter{reply: "**Summary**: all good"})

	rec := doRequest(t, s, http.MethodPost, "/api/chat", `{"message":"how am I doing?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("chat status: %d", rec.Code)
	}
	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["reply"] != "**Summary**: all good" {
		t.Errorf("reply: %q", resp["reply"])
	}

	log := b.Chat.Load("Guest")
	if len(log) != 2 || log[0].Role != "user" || log[1].Role != "ai" {
		t.Errorf("transcript: %+v", log)
	}
}

func TestServer_ChatOffline(t *testing.T) {
	s, _ := setupServer(t, &stubCompleter{err: errors.New("offline")})

	rec := doRequest(t, s, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["reply"] != gateway.OfflineChatNotice {
		t.Errorf("reply: %q", resp["reply"])
	}
}

func TestServer_ScheduleEmptyTasks(t *testing.T) {
	s, _ := setupServer(t, &stubCompleter{err: errors.New("must not be called")})

	rec := doRequest(t, s, http.MethodPost, "/api/schedule", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp struct {
		Schedule *brain.DaySchedule `json:"schedule"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Schedule != nil {
		t.Errorf("expected null schedule, got %+v", resp.Schedule)
	}
}

func TestServer_Scan(t *testing.T) {
	stub := &stubCompleter{reply: `{"text":"Water bill","tags":["bill"]}`}
	s, _ := setupServer(t, stub)

	rec := doRequest(t, s, http.MethodPost, "/api/scan", `{"image":"aGVsbG8=","mimeType":"image/png"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d body %s", rec.Code, rec.Body)
	}
	var m brain.Memory
	json.Unmarshal(rec.Body.Bytes(), &m)
	if m.Type != brain.TypeDocument || m.Content != "Water bill" {
		t.Errorf("got %+v", m)
	}
	found := false
	for _, tag := range m.Tags {
		if tag == "scanned-doc" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing scanned-doc tag: %v", m.Tags)
	}
}

func TestServer_UserIsolation(t *testing.T) {
	s, b := setupServer(t, &stubCompleter{})
	b.AddMemory("alice", brain.Memory{ID: "a", Type: brain.TypeNote, Content: "alice's"})

	rec := doRequest(t, s, http.MethodGet, "/api/memories?user=alice", "")
	var list []brain.Memory
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("alice list: %+v", list)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/memories", "")
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Errorf("guest must not see alice's memories: %+v", list)
	}
}
