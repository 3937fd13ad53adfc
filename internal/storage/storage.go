// Package storage provides the keyed persistence layer behind the brain
// stores. Both backends speak the same tiny KV capability so the stores can
// be unit-tested against an in-memory map.
package storage

import "fmt"

// Prefix versions every persisted key. Bump it to invalidate old state.
const Prefix = "mindbackup_v1"

// KV is the persistence capability injected into the brain stores.
// Get reports found=false for a missing key instead of an error.
type KV interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Key builds the persisted key for a user's resource,
// e.g. Key("Guest", "memories") -> "mindbackup_v1_memories_Guest".
func Key(userID, resource string) string {
	return fmt.Sprintf("%s_%s_%s", Prefix, resource, userID)
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Open creates the KV backend named by backend, storing data under dataDir.
// An empty backend defaults to sqlite.
func Open(backend, dataDir string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(dataDir)
	case BackendFile:
		return OpenFile(dataDir)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q (valid: sqlite, file)", backend)
	}
}

// MemKV is a map-backed KV for tests.
type MemKV struct {
	m map[string][]byte
	// FailSet, when non-nil, is returned from every Set call.
	FailSet error
}

// NewMemKV returns an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{m: make(map[string][]byte)}
}

func (k *MemKV) Get(key string) ([]byte, bool, error) {
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *MemKV) Set(key string, value []byte) error {
	if k.FailSet != nil {
		return k.FailSet
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	k.m[key] = cp
	return nil
}

func (k *MemKV) Delete(key string) error {
	delete(k.m, key)
	return nil
}

func (k *MemKV) Close() error { return nil }
