// Package cli defines the Cobra command tree for the mindbackup CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"

	// userFlag selects the acting user for every command. Empty means
	// the configured default user.
	userFlag string
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mindbackup",
	Short: "AI second-brain organizer: capture, recall, and plan",
	Long: `MindBackup is your second brain. Capture notes, tasks, events, locations,
and scanned documents; an AI service classifies and enriches them, and the
assistant answers questions over everything you have stored.

Everything is persisted locally per user. When the AI service is
unreachable, captures degrade to plain offline notes and nothing is lost.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Acting user (default from config)")

	rootCmd.AddCommand(
		newCaptureCmd(),
		newListCmd(),
		newDoneCmd(),
		newEditCmd(),
		newForgetCmd(),
		newChatCmd(),
		newPlanCmd(),
		newExportCmd(),
		newScanCmd(),
		newSyncCmd(),
		newWatchCmd(),
		newServeCmd(),
		newMCPCmd(),
		newProfileCmd(),
		newStatsCmd(),
		newSetupCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mindbackup %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
