package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/brain"
	"github.com/mindbackup/mindbackup/internal/gateway"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Re-enrich offline captures through the AI service",
		Long: `Memories captured while offline are stored verbatim with the
'offline-capture' tag. sync sends each of them back through classification
to refine the wording and fill in tags, priority, and deadline.

The memory's type and creation time never change; sync only enriches
content, tags, and metadata.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			var stale []brain.Memory
			for _, m := range a.brain.Memories.Load(a.user) {
				for _, tag := range m.Tags {
					if tag == "offline-capture" {
						stale = append(stale, m)
						break
					}
				}
			}
			if len(stale) == 0 {
				fmt.Println("Nothing to sync — no offline captures.")
				return nil
			}

			bar := progressbar.NewOptions(len(stale),
				progressbar.OptionSetDescription("  Syncing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			synced := 0
			for _, m := range stale {
				c := a.gw.Classify(cmd.Context(), m.Content)
				_ = bar.Add(1)

				// Still offline: the fallback tags its result the same
				// way, so stop instead of churning through the rest.
				if isOfflineCapture(c.Tags) {
					break
				}

				if _, err := a.brain.UpdateMemory(a.user, m.ID, syncPatch(m, c)); err != nil {
					a.log.Warn().Err(err).Str("id", m.ID).Msg("sync update failed")
					continue
				}
				synced++
			}
			_ = bar.Finish()

			if synced == 0 {
				fmt.Println("Sync aborted: the AI service is still unreachable.")
				return nil
			}
			fmt.Printf("Synced %d of %d offline captures.\n", synced, len(stale))
			return nil
		},
	}
}

// syncPatch builds the enrichment patch for an offline capture. The stored
// type never changes, so a classification that would now pick TASK must not
// smuggle a task status into a non-TASK memory.
func syncPatch(m brain.Memory, c gateway.Classification) brain.MemoryPatch {
	md := c.Metadata
	if md != nil && m.Type != brain.TypeTask && md.Status != "" {
		cleared := *md
		cleared.Status = ""
		md = &cleared
	}
	return brain.MemoryPatch{
		Content:  &c.Content,
		Tags:     &c.Tags,
		Metadata: md,
	}
}

func isOfflineCapture(tags []string) bool {
	for _, tag := range tags {
		if tag == "offline-capture" {
			return true
		}
	}
	return false
}
