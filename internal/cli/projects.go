package cli

import (
	"errors"
	"strconv"

	"liftoff-cli/internal/model"

	"github.com/spf13/cobra"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid id: " + s)
	}
	return id, nil
}

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsGetCmd(app))
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsUpdateCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	cmd.AddCommand(newProjectsDashboardCmd(app))
	cmd.AddCommand(newProjectsFilesCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects (role-scoped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, user, closeFn, err := requireUser(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			var projects []model.Project
			switch {
			case all:
				projects, err = client.ListProjects(cmd.Context())
			case user.RoleType.IsFounder():
				projects, err = client.ListFounderProjects(cmd.Context())
			default:
				projects, err = client.ListEmployeeProjects(cmd.Context())
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if projects == nil {
				projects = []model.Project{}
			}
			return writeOut(cmd, app, map[string]any{"data": projects})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every visible project instead of the role-scoped set")
	return cmd
}

func newProjectsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <project-id>",
		Short: "Show one project",
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

			p, err := client.GetProject(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func projectFlags(cmd *cobra.Command, p *model.Project) {
	cmd.Flags().StringVar(&p.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&p.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&p.Status, "status", "", "Project status")
	cmd.Flags().StringVar(&p.Priority, "priority", "", "Project priority")
	cmd.Flags().StringVar(&p.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.EndDate, "end", "", "End date (YYYY-MM-DD)")
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var p model.Project

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project (founder-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.Name == "" {
				return writeErr(cmd, errors.New("missing --name"))
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			out, err := client.CreateProject(cmd.Context(), p)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	projectFlags(cmd, &p)
	return cmd
}

func newProjectsUpdateCmd(app *App) *cobra.Command {
	var p model.Project

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update a project (founder-only)",
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

			// Fetch-merge so unset flags keep their server values.
			current, err := client.GetProject(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			merged := current
			if cmd.Flags().Changed("name") {
				merged.Name = p.Name
			}
			if cmd.Flags().Changed("description") {
				merged.Description = p.Description
			}
			if cmd.Flags().Changed("status") {
				merged.Status = p.Status
			}
			if cmd.Flags().Changed("priority") {
				merged.Priority = p.Priority
			}
			if cmd.Flags().Changed("start") {
				merged.StartDate = p.StartDate
			}
			if cmd.Flags().Changed("end") {
				merged.EndDate = p.EndDate
			}

			out, err := client.UpdateProject(cmd.Context(), id, merged)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	projectFlags(cmd, &p)
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project (founder-only)",
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

			if err := client.DeleteProject(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}

func newProjectsDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <project-id>",
		Short: "Show the project dashboard summary",
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

			data, err := client.ProjectDashboard(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
}

func newProjectsFilesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "files <project-id>",
		Short: "List files attached across the project's tasks",
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

			files, err := client.ListProjectFiles(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if files == nil {
				files = []model.Attachment{}
			}
			return writeOut(cmd, app, map[string]any{"data": files})
		},
	}
}
