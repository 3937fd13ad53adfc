package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/inbox"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <image-file>",
		Short: "Scan an image into a document memory",
		Long: `Analyze an image (jpg, jpeg, png) with the AI vision service and store
the extracted text as a DOCUMENT memory tagged 'scanned-doc'. If the
service is unreachable the document is queued as an offline placeholder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			switch strings.ToLower(filepath.Ext(path)) {
			case ".jpg", ".jpeg", ".png":
			default:
				return fmt.Errorf("unsupported image type %q (valid: .jpg, .jpeg, .png)", filepath.Ext(path))
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			proc := inbox.NewProcessor(a.brain, a.gw, a.user, a.log)
			m, err := proc.ProcessFile(cmd.Context(), path)
			if err != nil {
				return err
			}

			fmt.Printf("Scanned %s (id: %s)\n", filepath.Base(path), shortID(m.ID))
			fmt.Printf("  %s\n", truncate(m.Content, 70))
			if len(m.Tags) > 0 {
				fmt.Printf("  tags: %s\n", strings.Join(m.Tags, ", "))
			}
			return nil
		},
	}
}
