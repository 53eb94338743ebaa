package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/glassai/internal/models"
	"github.com/diogo/glassai/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage conversation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		conversations, err := openConversations()
		if err != nil {
			return err
		}

		list := conversations.Conversations()
		if len(list) == 0 {
			fmt.Println("No conversations yet.")
			return nil
		}

		now := time.Now()
		for _, conv := range list {
			preview := conv.Preview
			if preview == "" {
				preview = "(no messages)"
			}
			fmt.Printf("%s  %-10s %3d msgs  %s\n",
				conv.ID, models.FormatTimestamp(conv.UpdatedAt, now), len(conv.Messages), preview)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a conversation transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversations, err := openConversations()
		if err != nil {
			return err
		}

		conv := conversations.LoadConversation(args[0])
		if conv == nil {
			return fmt.Errorf("conversation not found: %s", args[0])
		}

		for _, msg := range conv.Messages {
			label := "You"
			if msg.Type == models.MessageAssistant {
				label = "Assistant"
			}
			fmt.Printf("[%s] %s\n", label, msg.Text)
			if msg.Image != "" {
				fmt.Println("  (image attached)")
			}
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversations, err := openConversations()
		if err != nil {
			return err
		}
		defer conversations.Flush()

		if !conversationExists(conversations, args[0]) {
			return fmt.Errorf("conversation not found: %s", args[0])
		}
		conversations.DeleteConversation(args[0])
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		conversations, err := openConversations()
		if err != nil {
			return err
		}
		defer conversations.Flush()

		n := len(conversations.Conversations())
		conversations.ClearAllConversations()
		fmt.Printf("Cleared %d conversation(s)\n", n)
		return nil
	},
}

// conversationExists reports whether the ID is in the list, without touching
// the current-conversation pointer.
func conversationExists(s *store.ConversationStore, id string) bool {
	for _, conv := range s.Conversations() {
		if conv.ID == id {
			return true
		}
	}
	return false
}

func openConversations() (*store.ConversationStore, error) {
	kv, err := newKV()
	if err != nil {
		return nil, err
	}
	return store.NewConversationStore(kv), nil
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
