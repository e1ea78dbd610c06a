package cli

import (
	"context"
	"fmt"

	"liftoff-cli/internal/api"
	"liftoff-cli/internal/forms"
	"liftoff-cli/internal/model"

	"github.com/spf13/cobra"
)

func newSprintsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprints",
		Short: "Sprint commands",
	}
	cmd.AddCommand(newSprintsListCmd(app))
	cmd.AddCommand(newSprintsCreateCmd(app))
	cmd.AddCommand(newSprintsUpdateCmd(app))
	cmd.AddCommand(newSprintsDeleteCmd(app))
	return cmd
}

// sprintContext gathers what the cross-field validator needs: the project's
// start date and its existing sprints.
func sprintContext(ctx context.Context, client *api.Client, projectID int64) (forms.SprintContext, error) {
	project, err := client.GetProject(ctx, projectID)
	if err != nil {
		return forms.SprintContext{}, fmt.Errorf("load project: %w", err)
	}
	existing, err := client.ListProjectSprints(ctx, projectID)
	if err != nil {
		return forms.SprintContext{}, fmt.Errorf("load sprints: %w", err)
	}
	return forms.SprintContext{ProjectStartDate: project.StartDate, Existing: existing}, nil
}

func newSprintsListCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's sprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			sprints, err := client.ListProjectSprints(cmd.Context(), projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if sprints == nil {
				sprints = []model.Sprint{}
			}
			return writeOut(cmd, app, map[string]any{"data": sprints})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newSprintsCreateCmd(app *App) *cobra.Command {
	var projectID int64
	var f forms.SprintForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sprint (validated against the project's other sprints)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			vctx, err := sprintContext(cmd.Context(), client, projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			sprint, err := f.Validate(vctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			out, err := client.CreateSprint(cmd.Context(), projectID, sprint)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().StringVar(&f.Name, "name", "", "Sprint name")
	cmd.Flags().StringVar(&f.Goal, "goal", "", "Sprint goal")
	cmd.Flags().StringVar(&f.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "end", "", "End date (YYYY-MM-DD)")
	return cmd
}

func newSprintsUpdateCmd(app *App) *cobra.Command {
	var projectID int64
	var f forms.SprintForm

	cmd := &cobra.Command{
		Use:   "update <sprint-id>",
		Short: "Update a sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			f.ID = id

			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			vctx, err := sprintContext(cmd.Context(), client, projectID)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Unset flags keep the sprint's current values.
			for _, cur := range vctx.Existing {
				if cur.ID != id {
					continue
				}
				if !cmd.Flags().Changed("name") {
					f.Name = cur.Name
				}
				if !cmd.Flags().Changed("goal") {
					f.Goal = cur.Goal
				}
				if !cmd.Flags().Changed("start") {
					f.StartDate = cur.StartDate
				}
				if !cmd.Flags().Changed("end") {
					f.EndDate = cur.EndDate
				}
				break
			}

			sprint, err := f.Validate(vctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			out, err := client.UpdateSprint(cmd.Context(), id, sprint)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().StringVar(&f.Name, "name", "", "Sprint name")
	cmd.Flags().StringVar(&f.Goal, "goal", "", "Sprint goal")
	cmd.Flags().StringVar(&f.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "end", "", "End date (YYYY-MM-DD)")
	return cmd
}

func newSprintsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sprint-id>",
		Short: "Delete a sprint",
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

			if err := client.DeleteSprint(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}
