package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/brain"
	"github.com/mindbackup/mindbackup/internal/config"
	"github.com/mindbackup/mindbackup/internal/gateway"
	"github.com/mindbackup/mindbackup/internal/storage"
)

// app bundles the wiring every command needs: config, storage, brain,
// gateway, logger, and the acting user.
type app struct {
	cfg   config.Config
	kv    storage.KV
	brain *brain.Brain
	gw    *gateway.Gateway
	log   zerolog.Logger
	user  string
}

// openApp loads config and assembles the application graph.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg.Log.Level)

	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	completer, err := gateway.New(cfg.Provider, cfg.ProviderKey(cfg.Provider))
	if err != nil {
		kv.Close()
		return nil, err
	}

	// Token budgeting is best-effort: without the encoding the gateway
	// still works, it just skips token-level truncation.
	tok, err := gateway.NewTokenizer()
	if err != nil {
		log.Warn().Err(err).Msg("tokenizer unavailable, skipping token budgeting")
		tok = nil
	}

	user := userFlag
	if user == "" {
		user = cfg.DefaultUser
	}

	return &app{
		cfg:   cfg,
		kv:    kv,
		brain: brain.New(kv, log),
		gw:    gateway.NewGateway(completer, tok, cfg.Chat.MaxContextTokens, log),
		log:   log,
		user:  user,
	}, nil
}

func (a *app) close() {
	if err := a.kv.Close(); err != nil {
		a.log.Warn().Err(err).Msg("storage close failed")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// resolveID expands an ID prefix to the full memory ID, so users can type
// the short form shown by `list`. Ambiguous or unknown prefixes error.
func (a *app) resolveID(prefix string) (string, error) {
	var match string
	for _, m := range a.brain.Memories.Load(a.user) {
		if !strings.HasPrefix(m.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
		}
		match = m.ID
	}
	if match == "" {
		return "", fmt.Errorf("no memory with id %q", prefix)
	}
	return match, nil
}

// shortID trims a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s for single-line display.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
