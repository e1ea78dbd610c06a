package api

import (
	"context"
	"fmt"

	"liftoff-cli/internal/model"
)

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	err := c.get(ctx, "/projects", &out)
	return out, err
}

// ListFounderProjects returns projects created by the authenticated founder.
func (c *Client) ListFounderProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	err := c.get(ctx, "/projects/founder", &out)
	return out, err
}

// ListEmployeeProjects returns projects the authenticated employee has joined.
func (c *Client) ListEmployeeProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	err := c.get(ctx, "/projects/employee", &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id int64) (model.Project, error) {
	var out model.Project
	err := c.get(ctx, fmt.Sprintf("/projects/%d", id), &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	var out model.Project
	err := c.post(ctx, "/projects", p, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id int64, p model.Project) (model.Project, error) {
	var out model.Project
	err := c.put(ctx, fmt.Sprintf("/projects/%d", id), p, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/projects/%d", id))
}

func (c *Client) ProjectDashboard(ctx context.Context, id int64) (model.DashboardData, error) {
	var out model.DashboardData
	err := c.get(ctx, fmt.Sprintf("/projects/%d/dashboard", id), &out)
	return out, err
}
