package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/brain"
)

func newEditCmd() *cobra.Command {
	var (
		content  string
		tags     []string
		priority string
		deadline string
		location string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a memory's content, tags, or metadata",
		Long: `Partially update a memory. Only the provided flags change; the type and
creation time are fixed for the life of the record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			var patch brain.MemoryPatch
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = &tags
			}

			if cmd.Flags().Changed("priority") || cmd.Flags().Changed("deadline") || cmd.Flags().Changed("location") {
				current, _ := a.brain.Memories.Get(a.user, id)
				md := brain.Metadata{}
				if current.Metadata != nil {
					md = *current.Metadata
				}
				if cmd.Flags().Changed("priority") {
					p := brain.Priority(strings.ToUpper(priority))
					if !brain.ValidPriority(p) {
						return fmt.Errorf("unknown priority %q (valid: LOW, MEDIUM, HIGH, CRITICAL)", priority)
					}
					md.Priority = p
				}
				if cmd.Flags().Changed("deadline") {
					md.Deadline = deadline
				}
				if cmd.Flags().Changed("location") {
					md.Location = location
				}
				patch.Metadata = &md
			}

			if patch.Content == nil && patch.Tags == nil && patch.Metadata == nil {
				return fmt.Errorf("nothing to change: pass --content, --tags, --priority, --deadline, or --location")
			}

			changed, err := a.brain.UpdateMemory(a.user, id, patch)
			if err != nil {
				return fmt.Errorf("update memory: %w", err)
			}
			if !changed {
				fmt.Println("No memory updated.")
				return nil
			}

			m, _ := a.brain.Memories.Get(a.user, id)
			fmt.Printf("Updated %s: %s\n", shortID(m.ID), truncate(m.Content, 60))
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Replace the content text")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Replace the tag list (comma separated)")
	cmd.Flags().StringVar(&priority, "priority", "", "Set priority: LOW, MEDIUM, HIGH, CRITICAL")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Set the deadline text")
	cmd.Flags().StringVar(&location, "location", "", "Set the location text")

	return cmd
}
