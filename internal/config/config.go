// Package config manages the global MindBackup configuration stored at
// ~/.config/mindbackup/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-wide settings.
type Config struct {
	DefaultUser string        `toml:"default_user"`
	Provider    string        `toml:"provider"` // gemini, claude, openai
	Keys        KeysConfig    `toml:"keys"`
	Storage     StorageConfig `toml:"storage"`
	Chat        ChatConfig    `toml:"chat"`
	Inbox       InboxConfig   `toml:"inbox"`
	Server      ServerConfig  `toml:"server"`
	Log         LogConfig     `toml:"log"`
}

type KeysConfig struct {
	Gemini    string `toml:"gemini"`
	Anthropic string `toml:"anthropic"`
	OpenAI    string `toml:"openai"`
}

// StorageConfig selects the persistence backend and its location.
type StorageConfig struct {
	Backend string `toml:"backend"` // sqlite or file
	DataDir string `toml:"data_dir"`
}

// ChatConfig bounds the assistant's prompt context.
type ChatConfig struct {
	MaxContextTokens int `toml:"max_context_tokens"`
}

// InboxConfig controls the drop-folder capture watcher.
type InboxConfig struct {
	Dir        string `toml:"dir"`
	DebounceMs int    `toml:"debounce_ms"`
}

// ServerConfig controls the local REST API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Default returns sensible defaults.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DefaultUser: "Guest",
		Provider:    "gemini",
		Storage: StorageConfig{
			Backend: "sqlite",
			DataDir: filepath.Join(home, ".local", "share", "mindbackup"),
		},
		Chat: ChatConfig{
			MaxContextTokens: 4000,
		},
		Inbox: InboxConfig{
			Dir:        filepath.Join(home, "MindBackup", "inbox"),
			DebounceMs: 500,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7151",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mindbackup", "config.toml"), nil
}

// Load reads the config, applying defaults for any missing values.
// Environment overrides apply even when no config file exists yet.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		applyEnv(&cfg)
		return cfg, nil // Defaults if we can't determine home dir.
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		applyEnv(&cfg)
		return cfg, nil // File doesn't exist yet, use defaults.
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets environment variables override file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Keys.Gemini = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Keys.Anthropic = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Keys.OpenAI = v
	}
	if v := os.Getenv("MINDBACKUP_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("MINDBACKUP_USER"); v != "" {
		cfg.DefaultUser = v
	}
}

// ProviderKey returns the API key configured for the named provider.
func (c Config) ProviderKey(provider string) string {
	switch provider {
	case "claude":
		return c.Keys.Anthropic
	case "openai":
		return c.Keys.OpenAI
	default:
		return c.Keys.Gemini
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
