package api

import (
	"context"

	"liftoff-cli/internal/model"
)

// ChatHistory returns the persisted analyst transcript.
func (c *Client) ChatHistory(ctx context.Context) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	err := c.get(ctx, "/chat-logs", &out)
	return out, err
}

// SaveChatMessage persists one transcript entry. This is fire-and-forget from
// the chat's point of view: a failure must never alter the transcript.
func (c *Client) SaveChatMessage(ctx context.Context, text string, sender model.ChatSender) error {
	return c.post(ctx, "/chat-logs", map[string]string{
		"message": text,
		"sender":  string(sender),
	}, nil)
}
