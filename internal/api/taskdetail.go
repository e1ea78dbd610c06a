package api

import (
	"context"
	"fmt"

	"liftoff-cli/internal/model"
)

// Task detail satellites: comments, attachments, activity log.

func (c *Client) ListTaskComments(ctx context.Context, taskID int64) ([]model.Comment, error) {
	var out []model.Comment
	err := c.get(ctx, fmt.Sprintf("/tasks/%d/comments", taskID), &out)
	return out, err
}

func (c *Client) CreateComment(ctx context.Context, taskID int64, content string) (model.Comment, error) {
	var out model.Comment
	err := c.post(ctx, fmt.Sprintf("/tasks/%d/comments", taskID), map[string]string{"content": content}, &out)
	return out, err
}

func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	return c.delete(ctx, fmt.Sprintf("/comments/%d", commentID))
}

func (c *Client) ListTaskAttachments(ctx context.Context, taskID int64) ([]model.Attachment, error) {
	var out []model.Attachment
	err := c.get(ctx, fmt.Sprintf("/tasks/%d/attachments", taskID), &out)
	return out, err
}

func (c *Client) CreateAttachment(ctx context.Context, taskID int64, a model.Attachment) (model.Attachment, error) {
	var out model.Attachment
	err := c.post(ctx, fmt.Sprintf("/tasks/%d/attachments", taskID), a, &out)
	return out, err
}

func (c *Client) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	return c.delete(ctx, fmt.Sprintf("/attachments/%d", attachmentID))
}

func (c *Client) ListTaskActivities(ctx context.Context, taskID int64) ([]model.TaskActivity, error) {
	var out []model.TaskActivity
	err := c.get(ctx, fmt.Sprintf("/tasks/%d/activities", taskID), &out)
	return out, err
}

// ListProjectFiles returns attachments scoped to a project rather than a task.
func (c *Client) ListProjectFiles(ctx context.Context, projectID int64) ([]model.Attachment, error) {
	var out []model.Attachment
	err := c.get(ctx, fmt.Sprintf("/projects/%d/attachments", projectID), &out)
	return out, err
}
