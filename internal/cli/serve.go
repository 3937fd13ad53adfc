package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/notify"
	"github.com/mindbackup/mindbackup/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local REST API",
		Long: `Serve the brain over HTTP for the web dashboard. The API is bound to
localhost by default and carries no authentication; do not expose it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			mon := notify.NewMonitor("", 0, a.log)
			cancel := mon.Subscribe(func(online bool) {
				if online {
					fmt.Println("Back online — AI features restored.")
				} else {
					fmt.Println("Connection lost — captures continue in offline mode.")
				}
			})
			defer cancel()
			go mon.Run(cmd.Context())

			srv := server.New(a.brain, a.gw, mon, a.user, a.log)
			fmt.Printf("MindBackup API on http://%s/api\n", addr)
			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
