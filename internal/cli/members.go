package cli

import (
	"liftoff-cli/internal/model"

	"github.com/spf13/cobra"
)

func newMembersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Project member commands",
	}
	cmd.AddCommand(newMembersListCmd(app))
	cmd.AddCommand(newMembersRemoveCmd(app))
	return cmd
}

func newMembersListCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's members",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			members, err := client.ListProjectMembers(cmd.Context(), projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if members == nil {
				members = []model.ProjectMember{}
			}
			return writeOut(cmd, app, map[string]any{"data": members})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newMembersRemoveCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "remove <user-id>",
		Short: "Remove a member from a project (founder-only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			if err := client.RemoveMember(cmd.Context(), projectID, userID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": userID}})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}
