package cli

import (
	"bufio"
	"errors"
	"strings"

	"liftoff-cli/internal/api"
	"liftoff-cli/internal/session"

	"github.com/spf13/cobra"
)

// readSecret reads a single line from stdin when a secret was not passed as a
// flag (so passwords don't have to live in shell history).
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	cmd.PrintErr(prompt)
	r := bufio.NewReader(cmd.InOrStdin())
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// storeCredentials persists the auth response for subsequent commands.
func storeCredentials(app *App, resp api.AuthResponse) error {
	store, err := openSession(app)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SetCredentials(resp.Token, resp.User)
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return writeErr(cmd, errors.New("missing --email"))
			}
			if password == "" {
				p, err := readSecret(cmd, "Password: ")
				if err != nil {
					return writeErr(cmd, err)
				}
				password = p
			}

			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			resp, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := storeCredentials(app, resp); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": resp.User})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Email == "" || req.FullName == "" {
				return writeErr(cmd, errors.New("missing --email or --name"))
			}
			if req.Password == "" {
				p, err := readSecret(cmd, "Password: ")
				if err != nil {
					return writeErr(cmd, err)
				}
				req.Password = p
			}

			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			resp, err := client.Register(cmd.Context(), req)
			if err != nil {
				return writeErr(cmd, err)
			}
			// The account may require email verification before a token is
			// issued; only store credentials when we got one.
			if resp.Token != "" {
				if err := storeCredentials(app, resp); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"user":    resp.User,
				"message": resp.Message,
			}})
		},
	}

	cmd.Flags().StringVar(&req.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&req.RoleType, "role", "EMPLOYEE", "Role (FOUNDER|EMPLOYEE)")
	return cmd
}

func newGoogleCmd(app *App) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "google",
		Short: "Sign in with Google (OAuth authorization code flow)",
		Long: strings.TrimSpace(`
Sign in with Google. Without --code, prints the consent URL to open in a
browser; run again with --code <authorization-code> to finish the exchange.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.GoogleClientID == "" {
				return writeErr(cmd, errors.New("LIFTOFF_GOOGLE_CLIENT_ID is not set"))
			}
			oauth := api.NewGoogleOAuth(app.cfg.GoogleClientID, app.cfg.GoogleClientSecret, app.cfg.GoogleRedirectURL)

			if code == "" {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"authUrl": oauth.AuthURL("liftoff-cli"),
					"next":    "liftoff google --code <authorization-code>",
				}})
			}

			idToken, err := oauth.ExchangeIDToken(cmd.Context(), code)
			if err != nil {
				return writeErr(cmd, err)
			}

			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			resp, err := client.GoogleLogin(cmd.Context(), idToken)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := storeCredentials(app, resp); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": resp.User})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the consent page")
	return cmd
}

func newVerifyEmailCmd(app *App) *cobra.Command {
	var email, code string

	cmd := &cobra.Command{
		Use:   "verify-email",
		Short: "Verify an account with the emailed code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || code == "" {
				return writeErr(cmd, errors.New("missing --email or --code"))
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()
			if err := client.VerifyEmail(cmd.Context(), email, code); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"verified": true}})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&code, "code", "", "Verification code")
	return cmd
}

func newResendCodeCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "resend-code",
		Short: "Resend the email verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return writeErr(cmd, errors.New("missing --email"))
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()
			if err := client.ResendVerificationCode(cmd.Context(), email); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"sent": true}})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	return cmd
}

func newForgotPasswordCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return writeErr(cmd, errors.New("missing --email"))
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()
			if err := client.ForgotPassword(cmd.Context(), email); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"sent": true}})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	return cmd
}

func newResetPasswordCmd(app *App) *cobra.Command {
	var email, code, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset the password with the emailed code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || code == "" {
				return writeErr(cmd, errors.New("missing --email or --code"))
			}
			if password == "" {
				p, err := readSecret(cmd, "New password: ")
				if err != nil {
					return writeErr(cmd, err)
				}
				password = p
			}
			client, closeFn, err := newAPI(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()
			if err := client.ResetPassword(cmd.Context(), email, code, password); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"reset": true}})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&code, "code", "", "Reset code")
	cmd.Flags().StringVar(&password, "password", "", "New password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear local credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer store.Close()

			// Local credentials are cleared even when the server call fails;
			// a dead backend must not keep the client logged in.
			client := api.New(app.cfg.APIBaseURL, store, app.cfg.HTTPTimeout)
			serverErr := client.Logout(cmd.Context())
			if err := store.Clear(); err != nil {
				return writeErr(cmd, err)
			}
			if serverErr != nil {
				cmd.PrintErrln("warning: server logout failed:", serverErr)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"loggedOut": true}})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer store.Close()

			if !store.IsLoggedIn() {
				return writeErr(cmd, errNotLoggedIn)
			}

			if remote {
				client := api.New(app.cfg.APIBaseURL, store, app.cfg.HTTPTimeout)
				user, err := client.Me(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": user})
			}

			user, ok := store.CurrentUser()
			if !ok {
				return writeErr(cmd, errNotLoggedIn)
			}
			claims, err := session.DecodeToken(store.Token())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"user":      user,
				"expiresAt": claims.Expiry,
			}})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the server instead of the local session")
	return cmd
}
