package gateway

import (
	"fmt"
	"strings"

	"github.com/mindbackup/mindbackup/internal/brain"
)

// Context window limits for chat prompts. The memory bank is capped at the
// 20 most recent records and the conversation log at the last 8 turns.
const (
	maxContextMemories = 20
	maxHistoryTurns    = 8
)

// personaPrompt renders the fixed persona, parameterised by the user's
// profile and the current personality mode.
func personaPrompt(profile brain.UserProfile, personality brain.PersonalityMode) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are MindBackup, the User's Second Brain.
You are NOT a chatbot. You are an Adaptive Neural Operating System.

CURRENT USER PROFILE (Fixed Defaults):
- Wake: %s
- Sleep: %s
- Work Start: %s
- Tone Preference: %s
- Notification Level: %s

YOUR MISSION:
Make the user's life organized WITHOUT them having to think.
Always optimize. Always improve. Always adapt.

CORE RULES:
1. REAL-TIME CONTEXT: Analyze time of day, routine, and energy level.
2. AUTONOMOUS: Do not ask unnecessary questions. Predict the best default value.
3. OFFLINE AWARE: If data is missing, use the Default Profile values.
4. FORMAT: Use "Auto UI Response Mode". Short cards, bullet points, checklists. NO LONG PARAGRAPHS.

PERSONALITY MODE: %s
`, profile.WakeTime, profile.SleepTime, profile.WorkStart, profile.VoiceTone, profile.NotificationLevel, personality)

	switch personality {
	case brain.PersonalityStrict:
		b.WriteString("Be direct. No fluff. Focus on execution.\n")
	case brain.PersonalityMentor:
		b.WriteString("Teach strategy. Explain the \"Why\".\n")
	case brain.PersonalityFriendly:
		b.WriteString("Casual, warm, supportive. Use emojis.\n")
	}

	b.WriteString(`
REQUIRED RESPONSE STRUCTURE:
1. **Summary**: 1 sentence direct answer.
2. **Action**: Button-like steps or a clear directive.
3. **Suggestion**: A smart improvement based on their routine.
`)

	return b.String()
}

// buildChatPrompt assembles persona, time context, memory bank, and the
// conversation log around the new query. The memory section is trimmed to
// the gateway's token budget.
func (g *Gateway) buildChatPrompt(query string, memories []brain.Memory, history []brain.ChatMessage, profile brain.UserProfile, personality brain.PersonalityMode) string {
	if len(memories) > maxContextMemories {
		memories = memories[:maxContextMemories]
	}
	memoryLines := make([]string, 0, len(memories))
	for _, m := range memories {
		line := fmt.Sprintf("[%s] %s", m.Type, m.Content)
		if m.Metadata != nil && m.Metadata.Location != "" {
			line += " @ " + m.Metadata.Location
		}
		memoryLines = append(memoryLines, line)
	}
	memoryContext := strings.Join(memoryLines, "\n")
	if g.tok != nil {
		memoryContext = g.tok.Truncate(memoryContext, g.maxContextTokens)
	}

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	historyLines := make([]string, 0, len(history))
	for _, msg := range history {
		speaker := "MindBackup"
		if msg.Role == "user" {
			speaker = "User"
		}
		historyLines = append(historyLines, speaker+": "+msg.Text)
	}

	now := g.now()
	timeContext := fmt.Sprintf("Current Time: %s (%s)", now.Format("3:04:05 PM"), now.Format("Mon Jan 2 2006"))

	return fmt.Sprintf(`%s

%s

USER MEMORY BANK (Context):
%s

CONVERSATION LOG:
%s

NEW INPUT: %q

RESPONSE:
`, personaPrompt(profile, personality), timeContext, memoryContext, strings.Join(historyLines, "\n"), query)
}
