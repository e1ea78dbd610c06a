package cli

import (
	"errors"

	"liftoff-cli/internal/model"

	"github.com/spf13/cobra"
)

func newInvitationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invitations",
		Short: "Project invitation commands",
	}
	cmd.AddCommand(newInvitationsSendCmd(app))
	cmd.AddCommand(newInvitationsListCmd(app))
	cmd.AddCommand(newInvitationsMineCmd(app))
	cmd.AddCommand(newInvitationsAcceptCmd(app))
	cmd.AddCommand(newInvitationsRejectCmd(app))
	return cmd
}

func newInvitationsSendCmd(app *App) *cobra.Command {
	var projectID, userID int64
	var email string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Invite a user to a project by id or email (founder-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			var out model.ProjectInvitation
			switch {
			case userID != 0 && email != "":
				return writeErr(cmd, errors.New("provide exactly one of --user or --email"))
			case userID != 0:
				out, err = client.SendInvitation(cmd.Context(), projectID, userID)
			case email != "":
				out, err = client.SendInvitationByEmail(cmd.Context(), projectID, email)
			default:
				return writeErr(cmd, errors.New("missing --user or --email"))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	cmd.Flags().Int64Var(&userID, "user", 0, "User id to invite")
	cmd.Flags().StringVar(&email, "email", "", "Email to invite")
	return cmd
}

func newInvitationsListCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's invitations (founder-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			invitations, err := client.ListProjectInvitations(cmd.Context(), projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if invitations == nil {
				invitations = []model.ProjectInvitation{}
			}
			return writeOut(cmd, app, map[string]any{"data": invitations})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newInvitationsMineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List invitations addressed to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			invitations, err := client.MyInvitations(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if invitations == nil {
				invitations = []model.ProjectInvitation{}
			}
			return writeOut(cmd, app, map[string]any{"data": invitations})
		},
	}
}

func newInvitationsAcceptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <invitation-id>",
		Short: "Accept an invitation",
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

			out, err := client.AcceptInvitation(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newInvitationsRejectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <invitation-id>",
		Short: "Reject an invitation",
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

			out, err := client.RejectInvitation(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}
