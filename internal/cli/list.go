package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/brain"
)

func newListCmd() *cobra.Command {
	var (
		typeFilter string
		search     string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memories, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			filter := brain.MemoryType(strings.ToUpper(typeFilter))
			if typeFilter != "" && !brain.ValidMemoryType(filter) {
				return fmt.Errorf("unknown memory type %q", typeFilter)
			}

			memories := a.brain.Memories.Find(a.user, search, filter)
			if len(memories) == 0 {
				fmt.Println("No memories yet. Try `mindbackup capture \"your first thought\"`.")
				return nil
			}
			if limit > 0 && len(memories) > limit {
				memories = memories[:limit]
			}

			for _, m := range memories {
				status := ""
				if m.Type == brain.TypeTask && m.Metadata != nil {
					if m.Metadata.Status == brain.StatusDone {
						status = " [done]"
					} else {
						status = " [pending]"
					}
				}
				fmt.Printf("%s  %-8s %s%s\n", shortID(m.ID), m.Type, truncate(m.Content, 60), status)
				if len(m.Tags) > 0 {
					fmt.Printf("          tags: %s\n", strings.Join(m.Tags, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "Filter by type: NOTE, TASK, LOCATION, EVENT, DOCUMENT")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Substring search over content and tags")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n memories (0 = all)")

	return cmd
}
