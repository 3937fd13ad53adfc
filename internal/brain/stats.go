package brain

import "time"

// DeriveStats recomputes the aggregate counters from the memory list.
//
// StreakDays is passed through from prev unchanged: nothing increments or
// decays it yet, pending a product decision on the streak rule. LastActive
// is stamped with now on every derivation.
func DeriveStats(memories []Memory, prev UserStats, now time.Time) UserStats {
	completed := 0
	for _, m := range memories {
		if m.Type == TypeTask && m.Metadata != nil && m.Metadata.Status == StatusDone {
			completed++
		}
	}

	return UserStats{
		MemoriesCaptured:  len(memories),
		TasksCompleted:    completed,
		StreakDays:        prev.StreakDays,
		ProductivityScore: clamp(completed*5+50, 20, 100),
		LastActive:        now,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
