package api

import (
	"context"
	"fmt"

	"liftoff-cli/internal/model"
)

func (c *Client) ListProjectSprints(ctx context.Context, projectID int64) ([]model.Sprint, error) {
	var out []model.Sprint
	err := c.get(ctx, fmt.Sprintf("/projects/%d/sprints", projectID), &out)
	return out, err
}

func (c *Client) CreateSprint(ctx context.Context, projectID int64, s model.Sprint) (model.Sprint, error) {
	var out model.Sprint
	err := c.post(ctx, fmt.Sprintf("/projects/%d/sprints", projectID), s, &out)
	return out, err
}

func (c *Client) UpdateSprint(ctx context.Context, sprintID int64, s model.Sprint) (model.Sprint, error) {
	var out model.Sprint
	err := c.put(ctx, fmt.Sprintf("/sprints/%d", sprintID), s, &out)
	return out, err
}

func (c *Client) DeleteSprint(ctx context.Context, sprintID int64) error {
	return c.delete(ctx, fmt.Sprintf("/sprints/%d", sprintID))
}
