package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Generate a day schedule from your pending tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			tasks := a.brain.Memories.PendingTasks(a.user)
			if len(tasks) == 0 {
				fmt.Println("No pending tasks to schedule!")
				return nil
			}

			profile := a.brain.Profiles.Load(a.user)
			fmt.Printf("Planning %d tasks (work starts %s)…\n", len(tasks), profile.WorkStart)

			sched := a.gw.Schedule(cmd.Context(), tasks, profile)
			if sched == nil {
				fmt.Println("Could not generate a schedule — the planner is offline. Try again later.")
				return nil
			}

			fmt.Printf("\nSchedule for %s:\n", sched.Date)
			for _, slot := range sched.Slots {
				fmt.Printf("  %-8s [%-8s] %s\n", slot.Time, slot.Type, slot.Task)
			}
			return nil
		},
	}
}
