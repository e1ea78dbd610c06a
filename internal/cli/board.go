package cli

import (
	"context"
	"fmt"

	"liftoff-cli/internal/api"
	"liftoff-cli/internal/model"
	"liftoff-cli/internal/state"

	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Kanban board commands",
	}
	cmd.AddCommand(newBoardShowCmd(app))
	cmd.AddCommand(newBoardMoveCmd(app))
	return cmd
}

// boardFor loads a project's tasks into a status-bucketed board wired to the
// backend, so moves go through the same gate and resync path as the TUI.
func boardFor(ctx context.Context, client *api.Client, user model.User, role model.Role, projectID int64) (*state.Board, error) {
	update := func(ctx context.Context, taskID int64, status model.TaskStatus) error {
		_, err := client.UpdateTaskStatus(ctx, taskID, status)
		return err
	}
	reload := func(ctx context.Context) ([]model.Task, error) {
		return client.ListProjectTasks(ctx, projectID)
	}
	board := state.NewBoard(user, role, update, reload)

	tasks, err := client.ListProjectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	board.SetTasks(tasks)
	return board, nil
}

func newBoardShowCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a project's tasks bucketed by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, user, closeFn, err := requireUser(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			board, err := boardFor(cmd.Context(), client, user, user.RoleType, projectID)
			if err != nil {
				return writeErr(cmd, err)
			}

			out := map[string]any{}
			for _, col := range board.Columns() {
				tasks := col.Tasks
				if tasks == nil {
					tasks = []model.Task{}
				}
				out[string(col.Status)] = tasks
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newBoardMoveCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "move <task-id> <status>",
		Short: "Move a task to another column",
		Long:  "Move a task to another status column. Employees may only move tasks assigned to themselves.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			status, ok := model.NormalizeTaskStatus(args[1])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown status %q", args[1]))
			}

			client, user, closeFn, err := requireUser(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			board, err := boardFor(cmd.Context(), client, user, user.RoleType, projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := board.Move(cmd.Context(), taskID, status); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"task": taskID, "status": status}})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}
