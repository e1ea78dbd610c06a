package cli

import (
	"fmt"
	"os"
	"strings"

	"liftoff-cli/internal/ai"
	"liftoff-cli/internal/api"
	"liftoff-cli/internal/chat"
	"liftoff-cli/internal/config"
	"liftoff-cli/internal/format"
	"liftoff-cli/internal/model"
	"liftoff-cli/internal/session"
	"liftoff-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	BaseURL    string
	SessionDB  string
	PrettyJSON bool
	Format     string

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "liftoff",
		Short:        "Liftoff project management CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  liftoff

  # Scriptable commands
  liftoff login --email you@startup.dev
  liftoff projects list
  liftoff tasks filter --project 3 --status PLANNED --unassigned
  liftoff chat ask "What should the team focus on this sprint?"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if app.BaseURL != "" {
			cfg.APIBaseURL = app.BaseURL
		}
		if app.SessionDB != "" {
			cfg.SessionDBPath = app.SessionDB
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "api-url", envOr("LIFTOFF_API_URL", ""), "Backend base URL (overrides LIFTOFF_API_URL)")
	cmd.PersistentFlags().StringVar(&app.SessionDB, "session-db", envOr("LIFTOFF_SESSION_DB", ""), "Path to the local session database")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LIFTOFF_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newGoogleCmd(app))
	cmd.AddCommand(newVerifyEmailCmd(app))
	cmd.AddCommand(newResendCodeCmd(app))
	cmd.AddCommand(newForgotPasswordCmd(app))
	cmd.AddCommand(newResetPasswordCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newSprintsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newMembersCmd(app))
	cmd.AddCommand(newInvitationsCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newChatCmd(app))

	return cmd
}

func runTUI(app *App) error {
	store, err := session.Open(app.cfg.SessionDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if !store.IsLoggedIn() {
		return errNotLoggedIn
	}
	user, ok := store.CurrentUser()
	if !ok {
		return errNotLoggedIn
	}
	role, _ := store.Role()

	client := api.New(app.cfg.APIBaseURL, store, app.cfg.HTTPTimeout)

	var analyst *chat.Analyst
	if app.cfg.AIConfigured() {
		gen := ai.New(app.cfg.AIEndpoint, app.cfg.AIKey, app.cfg.HTTPTimeout)
		analyst = chat.New(gen, client, nil)
	}

	err = tui.Run(tui.Deps{API: client, Analyst: analyst, User: user, Role: role})
	if analyst != nil {
		analyst.Flush()
	}
	return err
}

// openSession opens the local credential store; commands that only need the
// token source use this directly.
func openSession(app *App) (*session.Store, error) {
	return session.Open(app.cfg.SessionDBPath)
}

// newAPI builds the REST client backed by the stored session token. The
// returned closer releases the session database.
func newAPI(app *App) (*api.Client, func(), error) {
	store, err := openSession(app)
	if err != nil {
		return nil, nil, err
	}
	client := api.New(app.cfg.APIBaseURL, store, app.cfg.HTTPTimeout)
	return client, func() { _ = store.Close() }, nil
}

// requireUser is for commands whose behavior depends on who is logged in.
func requireUser(app *App) (*api.Client, model.User, func(), error) {
	store, err := openSession(app)
	if err != nil {
		return nil, model.User{}, nil, err
	}
	if !store.IsLoggedIn() {
		store.Close()
		return nil, model.User{}, nil, errNotLoggedIn
	}
	user, ok := store.CurrentUser()
	if !ok {
		store.Close()
		return nil, model.User{}, nil, errNotLoggedIn
	}
	client := api.New(app.cfg.APIBaseURL, store, app.cfg.HTTPTimeout)
	return client, user, func() { _ = store.Close() }, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	if api.IsAuthError(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "session expired; run `liftoff login` to sign in again")
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
