package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your brain as markdown or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, ok := export.Get(format)
			if !ok {
				return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(export.ValidFormats(), ", "))
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			out, err := exporter.Export(export.ExportData{
				User:     a.user,
				Profile:  a.brain.Profiles.Load(a.user),
				Stats:    a.brain.Stats(a.user),
				Memories: a.brain.Memories.Load(a.user),
			})
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if outPath == "" {
				fmt.Print(out)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Printf("Exported to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format: markdown or json")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")
	return cmd
}
