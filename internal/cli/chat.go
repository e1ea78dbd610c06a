package cli

import (
	"errors"
	"strings"

	"liftoff-cli/internal/ai"
	"liftoff-cli/internal/chat"
	"liftoff-cli/internal/model"

	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "AI analyst commands",
	}
	cmd.AddCommand(newChatAskCmd(app))
	cmd.AddCommand(newChatHistoryCmd(app))
	return cmd
}

func newChatAskCmd(app *App) *cobra.Command {
	var noPersist bool

	cmd := &cobra.Command{
		Use:   "ask <prompt...>",
		Short: "Ask the AI analyst a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.cfg.AIConfigured() {
				return writeErr(cmd, errors.New("AI analyst not configured; set LIFTOFF_AI_KEY"))
			}
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return writeErr(cmd, errors.New("empty prompt"))
			}

			client, _, closeFn, err := requireUser(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			gen := ai.New(app.cfg.AIEndpoint, app.cfg.AIKey, app.cfg.HTTPTimeout)
			var persist chat.Persister
			if !noPersist {
				persist = client
			}
			analyst := chat.New(gen, persist, nil)
			defer analyst.Flush()

			sendErr := analyst.Send(cmd.Context(), prompt)

			// The transcript carries the reply even on failure (the error
			// placeholder), so report it either way.
			messages := analyst.Messages()
			reply := chat.ErrorReply
			if n := len(messages); n > 0 && messages[n-1].Sender == model.ChatSenderAI {
				reply = messages[n-1].Message
			}
			if err := writeOut(cmd, app, map[string]any{"data": map[string]any{
				"prompt": prompt,
				"reply":  reply,
			}}); err != nil {
				return err
			}
			return sendErr
		},
	}

	cmd.Flags().BoolVar(&noPersist, "no-persist", false, "Skip saving the exchange to the server-side chat log")
	return cmd
}

func newChatHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the persisted chat transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			history, err := client.ChatHistory(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if history == nil {
				history = []model.ChatMessage{}
			}
			return writeOut(cmd, app, map[string]any{"data": history})
		},
	}
}
