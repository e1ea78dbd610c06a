package cli

import (
	"errors"

	"liftoff-cli/internal/forms"
	"liftoff-cli/internal/model"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksMineCmd(app))
	cmd.AddCommand(newTasksFilterCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksStatusCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksActivityCmd(app))
	cmd.AddCommand(newTasksAttachmentsCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			tasks, err := client.ListProjectTasks(cmd.Context(), projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if tasks == nil {
				tasks = []model.Task{}
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newTasksMineCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List the project tasks assigned to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			tasks, err := client.ListMyTasks(cmd.Context(), projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if tasks == nil {
				tasks = []model.Task{}
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newTasksFilterCmd(app *App) *cobra.Command {
	var projectID, assigneeID, sprintID int64
	var status, priority string
	var backlog, unassigned bool

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter a project's tasks server-side",
		RunE: func(cmd *cobra.Command, args []string) error {
			var f model.TaskFilters
			if cmd.Flags().Changed("assignee") {
				f.AssigneeID = &assigneeID
			}
			switch {
			case backlog && cmd.Flags().Changed("sprint"):
				return writeErr(cmd, errors.New("provide at most one of --sprint or --backlog"))
			case backlog:
				id := model.BacklogSprintID
				f.SprintID = &id
			case cmd.Flags().Changed("sprint"):
				f.SprintID = &sprintID
			}
			if status != "" {
				st, ok := model.NormalizeTaskStatus(status)
				if !ok {
					return writeErr(cmd, errors.New("invalid status: "+status))
				}
				f.Status = &st
			}
			if priority != "" {
				p, err := model.ParseTaskPriority(priority)
				if err != nil {
					return writeErr(cmd, err)
				}
				f.Priority = &p
			}
			f.Unassigned = unassigned

			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			tasks, err := client.FilterTasks(cmd.Context(), projectID, f)
			if err != nil {
				return writeErr(cmd, err)
			}
			if tasks == nil {
				tasks = []model.Task{}
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().Int64Var(&assigneeID, "assignee", 0, "Filter by assignee user id")
	cmd.Flags().Int64Var(&sprintID, "sprint", 0, "Filter by sprint id")
	cmd.Flags().BoolVar(&backlog, "backlog", false, "Filter to the backlog (tasks with no sprint)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (PLANNED|IN_PROGRESS|COMPLETED)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (LOW|MEDIUM|HIGH)")
	cmd.Flags().BoolVar(&unassigned, "unassigned", false, "Only tasks without an assignee")
	return cmd
}

func taskFlags(cmd *cobra.Command, f *forms.TaskForm) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.Description, "description", "", "Task description")
	cmd.Flags().StringVar(&f.Status, "status", "PLANNED", "Status (PLANNED|IN_PROGRESS|COMPLETED)")
	cmd.Flags().StringVar(&f.Priority, "priority", "MEDIUM", "Priority (LOW|MEDIUM|HIGH)")
	cmd.Flags().Int64Var(&f.SprintID, "sprint", 0, "Sprint id (omit for backlog)")
	cmd.Flags().Int64Var(&f.AssigneeID, "assignee", 0, "Assignee user id")
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var projectID int64
	var f forms.TaskForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task (founder-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := f.Validate()
			if err != nil {
				return writeErr(cmd, err)
			}

			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			out, err := client.CreateTask(cmd.Context(), projectID, task)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	taskFlags(cmd, &f)
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var f forms.TaskForm

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			f.ID = id

			task, err := f.Validate()
			if err != nil {
				return writeErr(cmd, err)
			}

			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			out, err := client.UpdateTask(cmd.Context(), id, task)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	taskFlags(cmd, &f)
	return cmd
}

func newTasksStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			status, ok := model.NormalizeTaskStatus(args[1])
			if !ok {
				return writeErr(cmd, errors.New("invalid status: "+args[1]))
			}

			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			out, err := client.UpdateTaskStatus(cmd.Context(), id, status)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task (founder-only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			if err := client.DeleteTask(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}

func newTasksActivityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activity <task-id>",
		Short: "Show a task's activity log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			activities, err := client.ListTaskActivities(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if activities == nil {
				activities = []model.TaskActivity{}
			}
			return writeOut(cmd, app, map[string]any{"data": activities})
		},
	}
}

func newTasksAttachmentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachments",
		Short: "Task attachment commands",
	}

	list := &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			attachments, err := client.ListTaskAttachments(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if attachments == nil {
				attachments = []model.Attachment{}
			}
			return writeOut(cmd, app, map[string]any{"data": attachments})
		},
	}

	var fileName, fileURL, fileType string
	add := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Attach a file reference to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if fileName == "" || fileURL == "" {
				return writeErr(cmd, errors.New("missing --name or --url"))
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			out, err := client.CreateAttachment(cmd.Context(), id, model.Attachment{
				FileName: fileName,
				FileURL:  fileURL,
				FileType: fileType,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	add.Flags().StringVar(&fileName, "name", "", "File name")
	add.Flags().StringVar(&fileURL, "url", "", "File URL")
	add.Flags().StringVar(&fileType, "type", "", "MIME type")

	remove := &cobra.Command{
		Use:   "delete <attachment-id>",
		Short: "Delete an attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			if err := client.DeleteAttachment(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}
