package cli

import (
	"errors"
	"strings"

	"liftoff-cli/internal/model"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Task comment commands",
	}
	cmd.AddCommand(newCommentsListCmd(app))
	cmd.AddCommand(newCommentsAddCmd(app))
	cmd.AddCommand(newCommentsDeleteCmd(app))
	return cmd
}

func newCommentsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's comments",
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

			comments, err := client.ListTaskComments(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if comments == nil {
				comments = []model.Comment{}
			}
			return writeOut(cmd, app, map[string]any{"data": comments})
		},
	}
}

func newCommentsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task-id> <text...>",
		Short: "Comment on a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			content := strings.TrimSpace(strings.Join(args[1:], " "))
			if content == "" {
				return writeErr(cmd, errors.New("empty comment"))
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			out, err := client.CreateComment(cmd.Context(), id, content)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newCommentsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete a comment",
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

			if err := client.DeleteComment(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}
