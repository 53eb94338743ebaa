package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/glassai/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session.

Each session opens a fresh conversation; history is persisted as you go.
Press Ctrl+N for a new conversation, Ctrl+Y to copy the last reply,
Esc or Ctrl+C to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.conversations.Flush()

		env.conversations.StartNewConversation()
		return tui.RunChat(env.session, env.conversations)
	},
}
