package api

import (
	"context"
	"fmt"

	"liftoff-cli/internal/model"
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleType string `json:"roleType"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register, login and google sign-in.
type AuthResponse struct {
	Token   string     `json:"token"`
	User    model.User `json:"user"`
	Message string     `json:"message"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/auth/register", req, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

// GoogleLogin exchanges a Google ID token for a backend session.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/auth/google", map[string]string{"idToken": idToken}, &out)
	return out, err
}

func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	return c.post(ctx, "/auth/verify-email", map[string]string{"email": email, "code": code}, nil)
}

func (c *Client) ResendVerificationCode(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/resend-code", map[string]string{"email": email}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return c.post(ctx, "/auth/reset-password", map[string]string{
		"email":       email,
		"code":        code,
		"newPassword": newPassword,
	}, nil)
}

// Logout tells the server to invalidate the session. Callers clear local
// credentials regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", struct{}{}, nil)
}

// Me returns the authenticated user from the server.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out model.User
	if err := c.get(ctx, "/auth/me", &out); err != nil {
		return model.User{}, fmt.Errorf("fetch current user: %w", err)
	}
	return out, nil
}
