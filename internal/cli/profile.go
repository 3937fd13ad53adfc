package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/brain"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your routine and assistant settings",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileSetCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			p := a.brain.Profiles.Load(a.user)
			fmt.Printf("Profile for %s:\n", a.user)
			fmt.Printf("  wake time:      %s\n", p.WakeTime)
			fmt.Printf("  sleep time:     %s\n", p.SleepTime)
			fmt.Printf("  work start:     %s\n", p.WorkStart)
			fmt.Printf("  break interval: %s\n", p.BreakInterval)
			fmt.Printf("  notifications:  %s\n", p.NotificationLevel)
			fmt.Printf("  voice tone:     %s\n", p.VoiceTone)
			fmt.Printf("  offline sync:   %s\n", p.OfflineSyncInterval)
			fmt.Printf("  theme:          %s\n", p.Theme)
			fmt.Printf("  language:       %s\n", p.Language)
			return nil
		},
	}
}

func newProfileSetCmd() *cobra.Command {
	var (
		wake, sleep, workStart, breakInterval string
		notifications, tone, syncInterval     string
		theme, language                       string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long: `Partially update the profile. Only the provided flags change; everything
else keeps its current (or default) value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			var patch brain.ProfilePatch
			set := func(name string, dst **string, v *string) {
				if cmd.Flags().Changed(name) {
					*dst = v
				}
			}
			set("wake", &patch.WakeTime, &wake)
			set("sleep", &patch.SleepTime, &sleep)
			set("work-start", &patch.WorkStart, &workStart)
			set("break-interval", &patch.BreakInterval, &breakInterval)
			set("notifications", &patch.NotificationLevel, &notifications)
			set("tone", &patch.VoiceTone, &tone)
			set("sync-interval", &patch.OfflineSyncInterval, &syncInterval)
			set("theme", &patch.Theme, &theme)
			set("language", &patch.Language, &language)

			if patch == (brain.ProfilePatch{}) {
				return fmt.Errorf("nothing to change: pass at least one flag (see --help)")
			}

			updated, err := a.brain.Profiles.Update(a.user, patch)
			if err != nil {
				return fmt.Errorf("update profile: %w", err)
			}

			fmt.Printf("Profile saved. Wake %s, work starts %s, tone %s.\n",
				updated.WakeTime, updated.WorkStart, updated.VoiceTone)
			return nil
		},
	}

	cmd.Flags().StringVar(&wake, "wake", "", "Wake time, e.g. 06:30")
	cmd.Flags().StringVar(&sleep, "sleep", "", "Sleep time, e.g. 23:30")
	cmd.Flags().StringVar(&workStart, "work-start", "", "Work start time, e.g. 09:00")
	cmd.Flags().StringVar(&breakInterval, "break-interval", "", "Break interval, e.g. '45 minutes'")
	cmd.Flags().StringVar(&notifications, "notifications", "", "Notification level: silent, medium, strict")
	cmd.Flags().StringVar(&tone, "tone", "", "Voice tone: friendly, mentor, strict")
	cmd.Flags().StringVar(&syncInterval, "sync-interval", "", "Offline sync interval, e.g. '8 hours'")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme: light, dark, system")
	cmd.Flags().StringVar(&language, "language", "", "Language: en, hi, auto")

	return cmd
}
