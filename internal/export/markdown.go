package export

import (
	"fmt"
	"strings"

	"github.com/mindbackup/mindbackup/internal/brain"
)

// MarkdownExporter renders the brain as a human-readable markdown document.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(data ExportData) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s's Second Brain\n\n", data.User)

	fmt.Fprintf(&b, "## Routine\n\n")
	fmt.Fprintf(&b, "| Wake | %s |\n", data.Profile.WakeTime)
	fmt.Fprintf(&b, "| Sleep | %s |\n", data.Profile.SleepTime)
	fmt.Fprintf(&b, "| Work start | %s |\n", data.Profile.WorkStart)
	fmt.Fprintf(&b, "| Break interval | %s |\n", data.Profile.BreakInterval)
	fmt.Fprintf(&b, "| Tone | %s |\n", data.Profile.VoiceTone)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Stats\n\n")
	fmt.Fprintf(&b, "%d memories, %d tasks completed, %d day streak, score %d/100.\n\n",
		data.Stats.MemoriesCaptured, data.Stats.TasksCompleted,
		data.Stats.StreakDays, data.Stats.ProductivityScore)

	for _, section := range []struct {
		heading string
		mt      brain.MemoryType
	}{
		{"Tasks", brain.TypeTask},
		{"Notes", brain.TypeNote},
		{"Events", brain.TypeEvent},
		{"Locations", brain.TypeLocation},
		{"Documents", brain.TypeDocument},
	} {
		b.WriteString(memorySection(section.heading, section.mt, data.Memories))
	}

	return b.String(), nil
}
