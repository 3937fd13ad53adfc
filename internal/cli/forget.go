package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <id>",
		Short: "Delete a memory",
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

			m, _ := a.brain.Memories.Get(a.user, id)
			removed, err := a.brain.DeleteMemory(a.user, id)
			if err != nil {
				return fmt.Errorf("delete memory: %w", err)
			}
			if removed {
				fmt.Printf("Memory removed: %s\n", truncate(m.Content, 50))
			}
			return nil
		},
	}
}
