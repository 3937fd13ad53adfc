// Package server exposes the brain over a local REST API for the web
// dashboard.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/brain"
	"github.com/mindbackup/mindbackup/internal/gateway"
	"github.com/mindbackup/mindbackup/internal/notify"
)

// Server holds the API dependencies.
type Server struct {
	brain       *brain.Brain
	gw          *gateway.Gateway
	net         notify.Notifier
	defaultUser string
	log         zerolog.Logger
	newID       func() string
	now         func() time.Time
}

// New creates a Server.
func New(b *brain.Brain, gw *gateway.Gateway, net notify.Notifier, defaultUser string, log zerolog.Logger) *Server {
	return &Server{
		brain:       b,
		gw:          gw,
		net:         net,
		defaultUser: defaultUser,
		log:         log,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/memories", s.handleListMemories)
		r.Post("/memories", s.handleCapture)
		r.Patch("/memories/{id}", s.handleUpdateMemory)
		r.Post("/memories/{id}/toggle", s.handleToggleMemory)
		r.Delete("/memories/{id}", s.handleDeleteMemory)

		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleUpdateProfile)

		r.Get("/stats", s.handleStats)
		r.Get("/status", s.handleStatus)

		r.Post("/chat", s.handleChat)
		r.Post("/schedule", s.handleSchedule)
		r.Post("/scan", s.handleScan)
	})

	return r
}

// ListenAndServe runs the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("api listening")
	return http.ListenAndServe(addr, s.Router())
}

// user resolves the acting user from the request, defaulting to the
// configured user. Each user's records are fully isolated by key.
func (s *Server) user(r *http.Request) string {
	if u := r.URL.Query().Get("user"); u != "" {
		return u
	}
	return s.defaultUser
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// gatewayCapture builds a memory from raw text, forcing the type when the
// caller demands one (forced captures skip the gateway entirely).
func (s *Server) gatewayCapture(r *http.Request, raw string, forced brain.MemoryType) brain.Memory {
	var c gateway.Classification
	if forced != "" {
		md := &brain.Metadata{Priority: brain.PriorityMedium}
		if forced == brain.TypeTask {
			md.Status = brain.StatusPending
		}
		c = gateway.Classification{Type: forced, Content: raw, Tags: []string{}, Metadata: md}
	} else {
		c = s.gw.Classify(r.Context(), raw)
	}

	return brain.Memory{
		ID:        s.newID(),
		Content:   c.Content,
		Type:      c.Type,
		Tags:      c.Tags,
		CreatedAt: s.now(),
		Metadata:  c.Metadata,
	}
}
