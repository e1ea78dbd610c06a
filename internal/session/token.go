package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"liftoff-cli/internal/model"
)

// Claims is the token payload the client cares about. The token is decoded
// without signature verification: the client only needs role and expiry to
// avoid a network round-trip, the server remains the authority.
type Claims struct {
	Subject  string
	Email    string
	FullName string
	RoleType model.Role
	IssuedAt time.Time
	Expiry   time.Time
}

// DecodeToken parses the JWT payload without verifying the signature.
func DecodeToken(token string) (Claims, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("parse token: unexpected claims type")
	}

	var c Claims
	c.Subject, _ = mc["sub"].(string)
	c.Email, _ = mc["email"].(string)
	c.FullName, _ = mc["fullName"].(string)
	if roleStr, ok := mc["roleType"].(string); ok {
		if role, err := model.ParseRole(roleStr); err == nil {
			c.RoleType = role
		}
	}
	if iat, ok := mc["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(iat), 0)
	}
	exp, ok := mc["exp"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("parse token: missing exp claim")
	}
	c.Expiry = time.Unix(int64(exp), 0)
	return c, nil
}

// Expired reports whether the token's expiry lies in the past.
func (c Claims) Expired(now time.Time) bool {
	return !c.Expiry.After(now)
}
