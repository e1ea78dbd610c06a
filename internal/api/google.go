package api

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"
)

// GoogleOAuth drives the "sign in with Google" flow: the user authorizes in a
// browser, pastes the code back, and the exchanged ID token is handed to the
// backend via Client.GoogleLogin.
type GoogleOAuth struct {
	conf *oauth2.Config
}

func NewGoogleOAuth(clientID, clientSecret, redirectURL string) *GoogleOAuth {
	return &GoogleOAuth{conf: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     googleOAuth.Endpoint,
		Scopes:       []string{"openid", "profile", "email"},
		RedirectURL:  redirectURL,
	}}
}

// AuthURL returns the browser URL that starts the consent flow.
func (g *GoogleOAuth) AuthURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeIDToken trades an authorization code for the Google ID token the
// backend expects at /auth/google.
func (g *GoogleOAuth) ExchangeIDToken(ctx context.Context, code string) (string, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("google token exchange: %w", err)
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("google token exchange: response carried no id_token")
	}
	return idToken, nil
}
