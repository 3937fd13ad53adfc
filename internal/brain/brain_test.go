package brain

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/storage"
)

var errTest = errors.New("boom")

func setupBrain(t *testing.T) (*storage.MemKV, *Brain) {
	t.Helper()
	kv := storage.NewMemKV()
	b := New(kv, zerolog.Nop())
	b.SetClock(func() time.Time { return statsNow })
	return kv, b
}

func TestBrain_StatsDerivedFromMemories(t *testing.T) {
	_, b := setupBrain(t)

	task := testMemory("t")
	task.Type = TypeTask
	task.Metadata = &Metadata{Status: StatusPending}
	if err := b.AddMemory("alice", task); err != nil {
		t.Fatalf("AddMemory: %v", err)
	}
	if _, err := b.ToggleTask("alice", "t"); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}

	stats := b.Stats("alice")
	if stats.MemoriesCaptured != 1 || stats.TasksCompleted != 1 {
		t.Errorf("stats: got %+v", stats)
	}
	if stats.ProductivityScore != 55 {
		t.Errorf("score: got %d, want 55", stats.ProductivityScore)
	}
}

func TestBrain_StatsStreakSurvivesRestamp(t *testing.T) {
	kv, b := setupBrain(t)

	// Simulate an earlier run that built up a streak.
	kv.Set(storage.Key("alice", "stats"), []byte(`{"streakDays":5}`))

	b.AddMemory("alice", testMemory("a"))
	stats := b.Stats("alice")
	if stats.StreakDays != 5 {
		t.Errorf("streak: got %d, want 5 carried through restamp", stats.StreakDays)
	}
}

func TestBrain_StatsCorruptSnapshotReinitialises(t *testing.T) {
	kv, b := setupBrain(t)
	kv.Set(storage.Key("alice", "stats"), []byte("garbage"))

	stats := b.Stats("alice")
	if stats.StreakDays != 1 {
		t.Errorf("streak: got %d, want initial 1", stats.StreakDays)
	}
}

func TestBrain_CountersNeverTrustSnapshot(t *testing.T) {
	kv, b := setupBrain(t)

	// A stale snapshot claims counters; the derivation must overwrite them
	// from the actual memory list.
	kv.Set(storage.Key("alice", "stats"), []byte(`{"memoriesCaptured":99,"tasksCompleted":42,"streakDays":2}`))

	stats := b.Stats("alice")
	if stats.MemoriesCaptured != 0 || stats.TasksCompleted != 0 {
		t.Errorf("counters must be re-derived, got %+v", stats)
	}
	if stats.StreakDays != 2 {
		t.Errorf("streak: got %d, want 2", stats.StreakDays)
	}
}

func TestBrain_DeleteRestampsStats(t *testing.T) {
	_, b := setupBrain(t)

	b.AddMemory("alice", testMemory("a"))
	b.AddMemory("alice", testMemory("b"))
	if _, err := b.DeleteMemory("alice", "a"); err != nil {
		t.Fatalf("DeleteMemory: %v", err)
	}

	if stats := b.Stats("alice"); stats.MemoriesCaptured != 1 {
		t.Errorf("memoriesCaptured: got %d, want 1", stats.MemoriesCaptured)
	}
}

func TestBrain_PersonalityFollowsStats(t *testing.T) {
	_, b := setupBrain(t)

	if got := b.Personality("alice"); got != PersonalityFriendly {
		t.Errorf("new user personality: got %s, want FRIENDLY", got)
	}

	for i := 0; i < 11; i++ {
		task := testMemory(string(rune('a' + i)))
		task.Type = TypeTask
		task.Metadata = &Metadata{Status: StatusDone}
		b.AddMemory("alice", task)
	}
	if got := b.Personality("alice"); got != PersonalityFunny {
		t.Errorf("after 11 completions: got %s, want FUNNY", got)
	}
}
