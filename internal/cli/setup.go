package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mindbackup/mindbackup/internal/config"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive first-run configuration",
		Long: `Walk through provider, API key, storage, and user setup and write the
result to the config file. Safe to re-run; existing values are kept when
you press Enter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			in := bufio.NewReader(os.Stdin)

			fmt.Println("MindBackup setup")
			fmt.Println()

			provider := promptChoice(in, "AI provider", []string{"gemini", "claude", "openai"}, cfg.Provider)
			cfg.Provider = provider

			key, err := promptSecret(fmt.Sprintf("API key for %s (Enter to keep current)", provider))
			if err != nil {
				return err
			}
			if key != "" {
				switch provider {
				case "claude":
					cfg.Keys.Anthropic = key
				case "openai":
					cfg.Keys.OpenAI = key
				default:
					cfg.Keys.Gemini = key
				}
			}

			cfg.Storage.Backend = promptChoice(in, "Storage backend", []string{"sqlite", "file"}, cfg.Storage.Backend)

			if user := promptLine(in, "Default user", cfg.DefaultUser); user != "" {
				cfg.DefaultUser = user
			}

			if err := config.Save(cfg); err != nil {
				return err
			}

			path, _ := config.Path()
			fmt.Println()
			fmt.Printf("Configuration written to %s\n", path)
			fmt.Println("Try: mindbackup capture \"buy milk tomorrow\"")
			return nil
		},
	}
}

// promptLine reads one line, returning current when the user just presses
// Enter.
func promptLine(in *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	line, err := in.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// promptChoice keeps asking until the answer is one of the options.
func promptChoice(in *bufio.Reader, label string, options []string, current string) string {
	for {
		answer := promptLine(in, fmt.Sprintf("%s (%s)", label, strings.Join(options, "/")), current)
		for _, opt := range options {
			if strings.EqualFold(answer, opt) {
				return opt
			}
		}
		fmt.Printf("Please choose one of: %s\n", strings.Join(options, ", "))
	}
}

// promptSecret reads without echo so keys don't land in scrollback.
func promptSecret(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
