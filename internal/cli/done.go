package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between pending and done",
		Args:  cobra.ExactArgs(1),
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

			changed, err := a.brain.ToggleTask(a.user, id)
			if err != nil {
				return fmt.Errorf("toggle task: %w", err)
			}
			if !changed {
				fmt.Println("Nothing toggled: this memory has no task metadata.")
				return nil
			}

			m, _ := a.brain.Memories.Get(a.user, id)
			fmt.Printf("%s is now %s\n", truncate(m.Content, 50), m.Metadata.Status)
			return nil
		},
	}
}
