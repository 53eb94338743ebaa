// Package commands provides the CLI commands for glassai.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/glassai/internal/api"
	"github.com/diogo/glassai/internal/imageutil"
	"github.com/diogo/glassai/internal/models"
	"github.com/diogo/glassai/internal/render"
	"github.com/diogo/glassai/internal/session"
	"github.com/diogo/glassai/internal/speech"
	"github.com/diogo/glassai/internal/storage"
	"github.com/diogo/glassai/internal/store"
)

var (
	// Global flags
	imageFlag    string
	endpointFlag string
	redisFlag    string
	silentFlag   bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "glassai [prompt]",
	Short: "Camera/chat assistant for the terminal",
	Long: `glassai captures an image or takes a question (or both), sends it to a
configured analysis endpoint, and replies in the terminal. Without an
endpoint configured, replies come from a built-in mock so the whole flow
works offline.

Conversation history and settings persist under ~/.glassai.

Examples:
  glassai chat                          Start interactive chat
  glassai "What is this?" -i photo.jpg  Ask about an image
  glassai -i photo.jpg                  Analyze an image alone
  cat question.txt | glassai            Read the prompt from stdin
  glassai history list                  Browse past conversations
  glassai config set endpoint https://api.example.org/analyze`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("glassai %s (built %s)\n", Version, BuildTime)
			return nil
		}

		prompt := ""
		if len(args) > 0 {
			prompt = args[0]
		}

		// Fall back to piped stdin for the prompt
		if prompt == "" {
			stat, _ := os.Stdin.Stat()
			if (stat.Mode() & os.ModeCharDevice) == 0 {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				prompt = strings.TrimSpace(string(data))
			}
		}

		if prompt == "" && imageFlag == "" {
			return cmd.Help()
		}

		return runQuery(prompt)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisFlag, "redis", "",
		"store history and settings in Redis at this address instead of ~/.glassai")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "",
		"analysis endpoint URL for this invocation (overrides the configured setting)")
	rootCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "attach an image file")
	rootCmd.Flags().BoolVar(&silentFlag, "silent", false, "do not speak the reply even if voice is enabled")
	rootCmd.Flags().BoolP("version", "v", false, "print version information")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// appEnv bundles the stores and session a command works against.
type appEnv struct {
	kv            storage.KV
	conversations *store.ConversationStore
	settings      *store.SettingsStore
	session       *session.Session
}

// newKV selects the durable storage backend.
func newKV() (storage.KV, error) {
	if redisFlag != "" {
		return storage.DialRedisKV(context.Background(), redisFlag)
	}
	return storage.DefaultFileKV()
}

// newEnv wires stores, client, speech, and session together.
func newEnv() (*appEnv, error) {
	kv, err := newKV()
	if err != nil {
		return nil, err
	}

	conversations := store.NewConversationStore(kv)
	settings := store.NewSettingsStore(kv)

	client, err := api.NewClient()
	if err != nil {
		return nil, err
	}

	opts := []session.Option{}
	if endpointFlag != "" {
		opts = append(opts, session.WithEndpointOverride(endpointFlag))
	}
	cfg := settings.Get()
	if cfg.VoiceEnabled && !silentFlag && speech.Available() {
		opts = append(opts, session.WithSpeaker(speech.NewExecSpeaker(cfg.VoiceSpeed, cfg.VoicePitch)))
	}

	return &appEnv{
		kv:            kv,
		conversations: conversations,
		settings:      settings,
		session:       session.New(conversations, settings, client, opts...),
	}, nil
}

// runQuery performs a one-shot ask and prints the rendered reply.
func runQuery(prompt string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.conversations.Flush()

	var img *models.CapturedImage
	if imageFlag != "" {
		img, err = imageutil.Load(imageFlag)
		if err != nil {
			return err
		}
	}

	env.conversations.StartNewConversation()
	resp, err := env.session.SendMessage(prompt, img)
	if err != nil {
		return err
	}

	fmt.Print(render.Markdown(resp.Text, 100))
	return nil
}
