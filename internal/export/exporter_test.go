package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mindbackup/mindbackup/internal/brain"
)

func exportData() ExportData {
	return ExportData{
		User:    "alice",
		Profile: brain.DefaultProfile(),
		Stats:   brain.UserStats{MemoriesCaptured: 3, TasksCompleted: 1, StreakDays: 2, ProductivityScore: 55},
		Memories: []brain.Memory{
			{ID: "t1", Type: brain.TypeTask, Content: "Renew passport",
				Metadata: &brain.Metadata{Status: brain.StatusPending, Deadline: "next week"}},
			{ID: "t2", Type: brain.TypeTask, Content: "Pay rent",
				Metadata: &brain.Metadata{Status: brain.StatusDone}},
			{ID: "l1", Type: brain.TypeLocation, Content: "Spare keys",
				Metadata: &brain.Metadata{Location: "garage shelf"}},
		},
	}
}

func TestGet(t *testing.T) {
	for _, name := range []string{"markdown", "json"} {
		if _, ok := Get(name); !ok {
			t.Errorf("format %q not registered", name)
		}
	}
	if _, ok := Get("yaml"); ok {
		t.Error("unknown format must not resolve")
	}
}

func TestMarkdownExporter(t *testing.T) {
	out, err := (&MarkdownExporter{}).Export(exportData())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if !strings.Contains(out, "# alice's Second Brain") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "- [ ] Renew passport (due next week)") {
		t.Errorf("pending task rendering:\n%s", out)
	}
	if !strings.Contains(out, "- [x] Pay rent") {
		t.Error("done task must render checked")
	}
	if !strings.Contains(out, "- Spare keys @ garage shelf") {
		t.Error("location annotation missing")
	}
	if strings.Contains(out, "## Notes") {
		t.Error("empty sections must be omitted")
	}
}

func TestJSONExporter(t *testing.T) {
	out, err := (&JSONExporter{}).Export(exportData())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded jsonOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.User != "alice" {
		t.Errorf("user: %q", decoded.User)
	}
	if len(decoded.Memories["TASK"]) != 2 || len(decoded.Memories["LOCATION"]) != 1 {
		t.Errorf("grouping: %+v", decoded.Memories)
	}
}

func TestJSONExporter_Empty(t *testing.T) {
	out, err := (&JSONExporter{}).Export(ExportData{User: "bob", Profile: brain.DefaultProfile()})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, `"memories": {}`) {
		t.Errorf("empty memories must render as an object:\n%s", out)
	}
}
