package brain

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/storage"
)

// MemoryStore persists the per-user memory list, most-recent-first.
//
// Load never fails (missing or corrupt state yields an empty list). Every
// mutation rewrites the whole list synchronously before returning, so the
// store is durable the moment a call completes. A mutex serialises writers:
// the app has one logical writer per action, but surfaces (CLI, REST, inbox)
// may run on different goroutines.
type MemoryStore struct {
	kv  storage.KV
	log zerolog.Logger
	mu  sync.Mutex
}

// NewMemoryStore creates a MemoryStore over the given KV backend.
func NewMemoryStore(kv storage.KV, log zerolog.Logger) *MemoryStore {
	return &MemoryStore{kv: kv, log: log}
}

// Load returns all memories for userID, newest first.
func (s *MemoryStore) Load(userID string) []Memory {
	raw, found, err := s.kv.Get(storage.Key(userID, "memories"))
	if err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("memory read failed, starting empty")
		return []Memory{}
	}
	if !found {
		return []Memory{}
	}

	var list []Memory
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("memory list corrupt, starting empty")
		return []Memory{}
	}
	if list == nil {
		list = []Memory{}
	}
	return list
}

// Add prepends m to the user's list and persists. Adding an ID that already
// exists is a no-op: IDs are unique across the store.
func (s *MemoryStore) Add(userID string, m Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.Load(userID)
	for _, existing := range list {
		if existing.ID == m.ID {
			s.log.Warn().Str("id", m.ID).Msg("duplicate memory id ignored")
			return nil
		}
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}

	list = append([]Memory{m}, list...)
	return s.persist(userID, list)
}

// Update merges patch into the memory with the given ID. Unknown IDs are a
// no-op. Returns true if a record was changed.
func (s *MemoryStore) Update(userID, id string, patch MemoryPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.Load(userID)
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if patch.Content != nil {
			list[i].Content = *patch.Content
		}
		if patch.Tags != nil {
			list[i].Tags = *patch.Tags
		}
		if patch.Metadata != nil {
			list[i].Metadata = patch.Metadata
		}
		return true, s.persist(userID, list)
	}
	return false, nil
}

// ToggleStatus flips a memory's status between PENDING and DONE. Memories
// without metadata are never toggled; unknown IDs are a no-op. Returns true
// if a record was changed.
func (s *MemoryStore) ToggleStatus(userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.Load(userID)
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].Metadata == nil {
			return false, nil
		}
		md := *list[i].Metadata
		if md.Status == StatusDone {
			md.Status = StatusPending
		} else {
			md.Status = StatusDone
		}
		list[i].Metadata = &md
		return true, s.persist(userID, list)
	}
	return false, nil
}

// Delete removes the memory with the given ID. Unknown IDs are a no-op.
// Returns true if a record was removed.
func (s *MemoryStore) Delete(userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.Load(userID)
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return true, s.persist(userID, list)
		}
	}
	return false, nil
}

// Get returns the memory with the given ID, if present.
func (s *MemoryStore) Get(userID, id string) (Memory, bool) {
	for _, m := range s.Load(userID) {
		if m.ID == id {
			return m, true
		}
	}
	return Memory{}, false
}

// Find filters memories by a case-insensitive substring of content or tags,
// and optionally by type. Empty query and type return everything.
func (s *MemoryStore) Find(userID, query string, typeFilter MemoryType) []Memory {
	query = strings.ToLower(query)

	var out []Memory
	for _, m := range s.Load(userID) {
		if typeFilter != "" && m.Type != typeFilter {
			continue
		}
		if query != "" && !matchesQuery(m, query) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// PendingTasks returns TASK memories whose status is PENDING, newest first.
func (s *MemoryStore) PendingTasks(userID string) []Memory {
	var out []Memory
	for _, m := range s.Load(userID) {
		if m.Type == TypeTask && m.Metadata != nil && m.Metadata.Status == StatusPending {
			out = append(out, m)
		}
	}
	return out
}

func (s *MemoryStore) persist(userID string, list []Memory) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.kv.Set(storage.Key(userID, "memories"), data)
}

func matchesQuery(m Memory, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(m.Content), loweredQuery) {
		return true
	}
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), loweredQuery) {
			return true
		}
	}
	return false
}
