package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/brain"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to your second brain",
		Long: `Ask the assistant anything about what you have captured. With a message
argument it answers once; without one it starts an interactive session.

The assistant sees your 20 most recent memories, the last 8 turns of
conversation, and your profile. Its tone adapts to your productivity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) > 0 {
				return a.chatTurn(cmd, strings.Join(args, " "))
			}

			fmt.Printf("Chatting as %s (personality: %s). Type 'exit' to quit.\n", a.user, a.brain.Personality(a.user))
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				// One in-flight request at a time: the loop blocks on
				// each turn, so input typed meanwhile just queues in
				// the terminal.
				if err := a.chatTurn(cmd, line); err != nil {
					return err
				}
			}
		},
	}
}

// chatTurn runs a single conversation turn and records it in the log.
func (a *app) chatTurn(cmd *cobra.Command, message string) error {
	memories := a.brain.Memories.Load(a.user)
	history := a.brain.Chat.Recent(a.user, 8)
	profile := a.brain.Profiles.Load(a.user)
	personality := a.brain.Personality(a.user)

	fmt.Println("MindBackup is typing…")
	reply := a.gw.Chat(cmd.Context(), message, memories, history, profile, personality)

	fmt.Println()
	fmt.Println(reply)
	fmt.Println()

	now := time.Now()
	if err := a.brain.Chat.Append(a.user,
		brain.ChatMessage{ID: uuid.NewString(), Role: "user", Text: message, Timestamp: now},
		brain.ChatMessage{ID: uuid.NewString(), Role: "ai", Text: reply, Timestamp: time.Now()},
	); err != nil {
		a.log.Warn().Err(err).Msg("chat log append failed")
	}
	return nil
}
