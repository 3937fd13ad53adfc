package export

import (
	"encoding/json"

	"github.com/mindbackup/mindbackup/internal/brain"
)

// JSONExporter renders ExportData as structured JSON, suitable for importing
// into another instance or processing with jq.
type JSONExporter struct{}

type jsonOutput struct {
	User     string                    `json:"user"`
	Profile  brain.UserProfile         `json:"profile"`
	Stats    brain.UserStats           `json:"stats"`
	Memories map[string][]brain.Memory `json:"memories"`
}

func (e *JSONExporter) Export(data ExportData) (string, error) {
	out := jsonOutput{
		User:     data.User,
		Profile:  data.Profile,
		Stats:    data.Stats,
		Memories: groupMemoriesByType(data.Memories),
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

func groupMemoriesByType(memories []brain.Memory) map[string][]brain.Memory {
	groups := make(map[string][]brain.Memory)
	for _, m := range memories {
		groups[string(m.Type)] = append(groups[string(m.Type)], m)
	}
	// Return nil map as empty object in JSON.
	if len(groups) == 0 {
		return map[string][]brain.Memory{}
	}
	return groups
}
