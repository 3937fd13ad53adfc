package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/brain"
	"github.com/mindbackup/mindbackup/internal/gateway"
)

func newCaptureCmd() *cobra.Command {
	var memType string

	cmd := &cobra.Command{
		Use:   "capture <text>",
		Short: "Capture a thought, task, event, or location",
		Long: `Save raw text into your second brain. The AI classifies it (note, task,
event, location), refines the wording, and extracts tags, priority, and
deadline. When the AI is unreachable the text is stored verbatim as an
offline note — run 'mindbackup sync' later to enrich it.

Examples:
  mindbackup capture "buy milk tomorrow"
  mindbackup capture "passport is in the kitchen drawer"
  mindbackup capture --type TASK "file taxes before April 15"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("nothing to capture")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			var c gateway.Classification
			if memType != "" {
				forced := brain.MemoryType(strings.ToUpper(memType))
				if !brain.ValidMemoryType(forced) {
					return fmt.Errorf("unknown memory type %q (valid: NOTE, TASK, LOCATION, EVENT, DOCUMENT)", memType)
				}
				md := &brain.Metadata{Priority: brain.PriorityMedium}
				if forced == brain.TypeTask {
					md.Status = brain.StatusPending
				}
				c = gateway.Classification{Type: forced, Content: text, Tags: []string{}, Metadata: md}
			} else {
				c = a.gw.Classify(cmd.Context(), text)
			}

			m := brain.Memory{
				ID:        uuid.NewString(),
				Content:   c.Content,
				Type:      c.Type,
				Tags:      c.Tags,
				CreatedAt: time.Now(),
				Metadata:  c.Metadata,
			}
			if err := a.brain.AddMemory(a.user, m); err != nil {
				return fmt.Errorf("store memory: %w", err)
			}

			fmt.Printf("Saved to Brain as %s (id: %s)\n", m.Type, shortID(m.ID))
			fmt.Printf("  %q\n", m.Content)
			if len(m.Tags) > 0 {
				fmt.Printf("  tags: %s\n", strings.Join(m.Tags, ", "))
			}
			for _, tag := range m.Tags {
				if tag == "offline-capture" {
					fmt.Println("  (AI unavailable — stored as an offline note, run `mindbackup sync` later)")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&memType, "type", "t", "",
		"Force a memory type and skip AI classification")

	return cmd
}
