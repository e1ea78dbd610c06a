package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"liftoff-cli/internal/model"
)

func (c *Client) ListProjectTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	var out []model.Task
	err := c.get(ctx, fmt.Sprintf("/projects/%d/tasks", projectID), &out)
	return out, err
}

// ListMyTasks returns tasks assigned to the authenticated user within a project.
func (c *Client) ListMyTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	var out []model.Task
	err := c.get(ctx, fmt.Sprintf("/projects/%d/tasks/me", projectID), &out)
	return out, err
}

// FilterTasks queries the server-side filter endpoint. A SprintID of
// model.BacklogSprintID selects the backlog bucket (tasks with no sprint).
func (c *Client) FilterTasks(ctx context.Context, projectID int64, f model.TaskFilters) ([]model.Task, error) {
	q := url.Values{}
	if f.AssigneeID != nil {
		q.Set("assigneeId", strconv.FormatInt(*f.AssigneeID, 10))
	}
	if f.SprintID != nil {
		q.Set("sprintId", strconv.FormatInt(*f.SprintID, 10))
	}
	if f.Status != nil {
		q.Set("status", string(*f.Status))
	}
	if f.Priority != nil {
		q.Set("priority", string(*f.Priority))
	}
	if f.Unassigned {
		q.Set("unassigned", "true")
	}
	var out []model.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/tasks/filter", projectID), q, nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, projectID int64, t model.Task) (model.Task, error) {
	var out model.Task
	err := c.post(ctx, fmt.Sprintf("/projects/%d/tasks", projectID), t, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, taskID int64, t model.Task) (model.Task, error) {
	var out model.Task
	err := c.put(ctx, fmt.Sprintf("/tasks/%d", taskID), t, &out)
	return out, err
}

func (c *Client) UpdateTaskStatus(ctx context.Context, taskID int64, status model.TaskStatus) (model.Task, error) {
	var out model.Task
	err := c.put(ctx, fmt.Sprintf("/tasks/%d/status", taskID), map[string]string{"status": string(status)}, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	return c.delete(ctx, fmt.Sprintf("/tasks/%d", taskID))
}
