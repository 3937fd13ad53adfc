package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/inbox"
)

func newWatchCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the inbox folder and capture dropped files",
		Long: `Watch a folder for new files. Text files (.txt, .md) are classified and
captured; images (.jpg, .jpeg, .png) are scanned as documents. Handled
files move into a processed/ subfolder. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if dir == "" {
				dir = a.cfg.Inbox.Dir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create inbox dir: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s (Ctrl-C to stop)…\n", dir)

			proc := inbox.NewProcessor(a.brain, a.gw, a.user, a.log)
			debounce := time.Duration(a.cfg.Inbox.DebounceMs) * time.Millisecond
			if err := inbox.Watch(ctx, dir, debounce, proc, a.log); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Folder to watch (default from config)")
	return cmd
}
