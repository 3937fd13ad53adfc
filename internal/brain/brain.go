package brain

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/storage"
)

// Brain ties the per-user stores together and keeps derived stats fresh:
// every mutation recomputes and stamps stats before the next read by any
// consumer.
//
// The persisted stats snapshot only carries the fields that cannot be
// re-derived (StreakDays, LastActive); the counters are recomputed from the
// memory list on every Stats call.
type Brain struct {
	Memories *MemoryStore
	Profiles *ProfileStore
	Chat     *ChatLog

	kv  storage.KV
	log zerolog.Logger
	now func() time.Time
}

// New assembles a Brain over the given KV backend.
func New(kv storage.KV, log zerolog.Logger) *Brain {
	return &Brain{
		Memories: NewMemoryStore(kv, log),
		Profiles: NewProfileStore(kv, log),
		Chat:     NewChatLog(kv, log),
		kv:       kv,
		log:      log,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (b *Brain) SetClock(now func() time.Time) { b.now = now }

// Stats derives the user's current stats from the memory list, persists the
// snapshot, and returns it.
func (b *Brain) Stats(userID string) UserStats {
	prev := b.loadStatsSnapshot(userID)
	stats := DeriveStats(b.Memories.Load(userID), prev, b.now())
	b.saveStatsSnapshot(userID, stats)
	return stats
}

// Personality returns the assistant mode for the user's current stats.
func (b *Brain) Personality(userID string) PersonalityMode {
	return SelectPersonality(b.Stats(userID))
}

// AddMemory stores m and restamps stats.
func (b *Brain) AddMemory(userID string, m Memory) error {
	if err := b.Memories.Add(userID, m); err != nil {
		return err
	}
	b.Stats(userID)
	return nil
}

// UpdateMemory patches a memory and restamps stats. Unknown IDs no-op.
func (b *Brain) UpdateMemory(userID, id string, patch MemoryPatch) (bool, error) {
	changed, err := b.Memories.Update(userID, id, patch)
	if err != nil {
		return changed, err
	}
	if changed {
		b.Stats(userID)
	}
	return changed, nil
}

// ToggleTask flips a task's status and restamps stats.
func (b *Brain) ToggleTask(userID, id string) (bool, error) {
	changed, err := b.Memories.ToggleStatus(userID, id)
	if err != nil {
		return changed, err
	}
	if changed {
		b.Stats(userID)
	}
	return changed, nil
}

// DeleteMemory removes a memory and restamps stats.
func (b *Brain) DeleteMemory(userID, id string) (bool, error) {
	removed, err := b.Memories.Delete(userID, id)
	if err != nil {
		return removed, err
	}
	if removed {
		b.Stats(userID)
	}
	return removed, nil
}

func (b *Brain) loadStatsSnapshot(userID string) UserStats {
	initial := InitialStats(b.now())

	raw, found, err := b.kv.Get(storage.Key(userID, "stats"))
	if err != nil || !found {
		return initial
	}

	var snap UserStats
	if err := json.Unmarshal(raw, &snap); err != nil {
		b.log.Warn().Err(err).Str("user", userID).Msg("stats snapshot corrupt, reinitialising")
		return initial
	}
	if snap.StreakDays < 1 {
		snap.StreakDays = initial.StreakDays
	}
	return snap
}

func (b *Brain) saveStatsSnapshot(userID string, stats UserStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := b.kv.Set(storage.Key(userID, "stats"), data); err != nil {
		b.log.Warn().Err(err).Str("user", userID).Msg("stats snapshot write failed")
	}
}
