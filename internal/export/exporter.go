// Package export renders a user's brain into portable formats for backup
// or use in other tools.
package export

import (
	"fmt"

	"github.com/mindbackup/mindbackup/internal/brain"
)

// ExportData is passed to every Exporter.
type ExportData struct {
	User     string
	Profile  brain.UserProfile
	Stats    brain.UserStats
	Memories []brain.Memory
}

// Exporter renders ExportData to a string in a specific format.
type Exporter interface {
	Export(data ExportData) (string, error)
}

// registry maps format names to Exporter implementations.
var registry = map[string]Exporter{
	"markdown": &MarkdownExporter{},
	"json":     &JSONExporter{},
}

// Get returns the Exporter registered under name, and whether it was found.
func Get(name string) (Exporter, bool) {
	e, ok := registry[name]
	return e, ok
}

// ValidFormats returns the list of supported export format names.
func ValidFormats() []string {
	formats := make([]string, 0, len(registry))
	for k := range registry {
		formats = append(formats, k)
	}
	return formats
}

// memorySection renders memories of the given type as a markdown list block.
func memorySection(heading string, memType brain.MemoryType, memories []brain.Memory) string {
	var items []brain.Memory
	for _, m := range memories {
		if m.Type == memType {
			items = append(items, m)
		}
	}
	if len(items) == 0 {
		return ""
	}
	out := fmt.Sprintf("## %s\n\n", heading)
	for _, m := range items {
		line := fmt.Sprintf("- %s", m.Content)
		if m.Type == brain.TypeTask && m.Metadata != nil {
			if m.Metadata.Status == brain.StatusDone {
				line = fmt.Sprintf("- [x] %s", m.Content)
			} else {
				line = fmt.Sprintf("- [ ] %s", m.Content)
			}
			if m.Metadata.Deadline != "" {
				line += fmt.Sprintf(" (due %s)", m.Metadata.Deadline)
			}
		}
		if m.Metadata != nil && m.Metadata.Location != "" {
			line += fmt.Sprintf(" @ %s", m.Metadata.Location)
		}
		out += line + "\n"
	}
	out += "\n"
	return out
}
