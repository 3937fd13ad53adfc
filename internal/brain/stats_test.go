package brain

import (
	"testing"
	"time"
)

var statsNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func doneTask(id string) Memory {
	return Memory{
		ID:       id,
		Type:     TypeTask,
		Metadata: &Metadata{Status: StatusDone},
	}
}

func TestDeriveStats_Counts(t *testing.T) {
	memories := []Memory{
		doneTask("t1"),
		doneTask("t2"),
		{ID: "p", Type: TypeTask, Metadata: &Metadata{Status: StatusPending}},
		{ID: "n", Type: TypeNote},
		{ID: "d", Type: TypeDocument, Metadata: &Metadata{DocumentURL: "x.png"}},
	}

	got := DeriveStats(memories, InitialStats(statsNow), statsNow)
	if got.MemoriesCaptured != 5 {
		t.Errorf("memoriesCaptured: got %d, want 5", got.MemoriesCaptured)
	}
	if got.TasksCompleted != 2 {
		t.Errorf("tasksCompleted: got %d, want 2", got.TasksCompleted)
	}
	if got.ProductivityScore != 60 {
		t.Errorf("score: got %d, want 60", got.ProductivityScore)
	}
	if !got.LastActive.Equal(statsNow) {
		t.Errorf("lastActive: got %v", got.LastActive)
	}
}

func TestDeriveStats_ScoreClampsAt100(t *testing.T) {
	var memories []Memory
	for i := 0; i < 15; i++ {
		memories = append(memories, doneTask(string(rune('a'+i))))
	}

	got := DeriveStats(memories, InitialStats(statsNow), statsNow)
	if got.ProductivityScore != 100 {
		t.Errorf("score: got %d, want clamp at 100", got.ProductivityScore)
	}
}

func TestDeriveStats_EmptyListScoresBaseline(t *testing.T) {
	got := DeriveStats(nil, InitialStats(statsNow), statsNow)
	if got.ProductivityScore != 50 {
		t.Errorf("score: got %d, want 50 with zero completions", got.ProductivityScore)
	}
	if got.MemoriesCaptured != 0 || got.TasksCompleted != 0 {
		t.Errorf("counters: got %+v", got)
	}
}

func TestDeriveStats_StreakPassesThrough(t *testing.T) {
	prev := UserStats{StreakDays: 7}
	got := DeriveStats(nil, prev, statsNow)
	if got.StreakDays != 7 {
		t.Errorf("streak: got %d, want 7 carried over", got.StreakDays)
	}
}

func TestInitialStats(t *testing.T) {
	got := InitialStats(statsNow)
	if got.StreakDays != 1 {
		t.Errorf("streak: got %d, want 1", got.StreakDays)
	}
	if got.ProductivityScore != 60 {
		t.Errorf("score: got %d, want 60", got.ProductivityScore)
	}
}

func TestSelectPersonality(t *testing.T) {
	tests := []struct {
		name  string
		stats UserStats
		want  PersonalityMode
	}{
		{"low score is strict", UserStats{ProductivityScore: 39}, PersonalityStrict},
		{"score boundary 40 is not strict", UserStats{ProductivityScore: 40}, PersonalityFriendly},
		{"many completions is funny", UserStats{ProductivityScore: 80, TasksCompleted: 11}, PersonalityFunny},
		{"completion boundary 10 is friendly", UserStats{ProductivityScore: 80, TasksCompleted: 10}, PersonalityFriendly},
		{"strict wins over funny", UserStats{ProductivityScore: 20, TasksCompleted: 50}, PersonalityStrict},
		{"default is friendly", UserStats{ProductivityScore: 60}, PersonalityFriendly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectPersonality(tt.stats); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
