package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show productivity stats and assistant personality",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			stats := a.brain.Stats(a.user)
			personality := a.brain.Personality(a.user)

			fmt.Printf("Stats for %s:\n", a.user)
			fmt.Printf("  memories captured:  %d\n", stats.MemoriesCaptured)
			fmt.Printf("  tasks completed:    %d\n", stats.TasksCompleted)
			fmt.Printf("  streak:             %d day(s)\n", stats.StreakDays)
			fmt.Printf("  productivity score: %d/100\n", stats.ProductivityScore)
			fmt.Printf("  last active:        %s\n", stats.LastActive.Format("2006-01-02 15:04"))
			fmt.Printf("  personality:        %s\n", personality)
			return nil
		},
	}
}
