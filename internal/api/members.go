package api

import (
	"context"
	"fmt"

	"liftoff-cli/internal/model"
)

func (c *Client) ListProjectMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error) {
	var out []model.ProjectMember
	err := c.get(ctx, fmt.Sprintf("/projects/%d/members", projectID), &out)
	return out, err
}

func (c *Client) RemoveMember(ctx context.Context, projectID, userID int64) error {
	return c.delete(ctx, fmt.Sprintf("/projects/%d/members/%d", projectID, userID))
}
