package api

import (
	"context"
	"fmt"

	"liftoff-cli/internal/model"
)

// SendInvitation invites an existing user by id (founder flow).
func (c *Client) SendInvitation(ctx context.Context, projectID, userID int64) (model.ProjectInvitation, error) {
	var out model.ProjectInvitation
	err := c.post(ctx, fmt.Sprintf("/projects/%d/invitations", projectID), map[string]int64{"userId": userID}, &out)
	return out, err
}

// SendInvitationByEmail invites by email address (founder flow).
func (c *Client) SendInvitationByEmail(ctx context.Context, projectID int64, email string) (model.ProjectInvitation, error) {
	var out model.ProjectInvitation
	err := c.post(ctx, fmt.Sprintf("/projects/%d/invitations/email", projectID), map[string]string{"email": email}, &out)
	return out, err
}

func (c *Client) ListProjectInvitations(ctx context.Context, projectID int64) ([]model.ProjectInvitation, error) {
	var out []model.ProjectInvitation
	err := c.get(ctx, fmt.Sprintf("/projects/%d/invitations", projectID), &out)
	return out, err
}

func (c *Client) MyInvitations(ctx context.Context) ([]model.ProjectInvitation, error) {
	var out []model.ProjectInvitation
	err := c.get(ctx, "/invitations/my-invitations", &out)
	return out, err
}

func (c *Client) AcceptInvitation(ctx context.Context, invitationID int64) (model.ProjectInvitation, error) {
	var out model.ProjectInvitation
	err := c.post(ctx, fmt.Sprintf("/invitations/%d/accept", invitationID), struct{}{}, &out)
	return out, err
}

func (c *Client) RejectInvitation(ctx context.Context, invitationID int64) (model.ProjectInvitation, error) {
	var out model.ProjectInvitation
	err := c.post(ctx, fmt.Sprintf("/invitations/%d/reject", invitationID), struct{}{}, &out)
	return out, err
}
