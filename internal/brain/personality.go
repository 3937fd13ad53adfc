package brain

// SelectPersonality maps current stats to the assistant's tone. It is pure
// and must be recomputed after every stats change, never cached across
// mutations.
//
// MENTOR and SILENT exist as values but are not selected by this rule; they
// become reachable only if the rule is extended.
func SelectPersonality(stats UserStats) PersonalityMode {
	if stats.ProductivityScore < 40 {
		return PersonalityStrict
	}
	if stats.TasksCompleted > 10 {
		return PersonalityFunny
	}
	return PersonalityFriendly
}
