// Package session persists the authenticated identity (token + user snapshot)
// in a small local SQLite database and answers the access-check questions the
// rest of the client asks: who am I, what role, is the token still valid.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"liftoff-cli/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_meta (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL
);`

const (
	keyToken = "token"
	keyUser  = "user"
)

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SetCredentials stores the token and user snapshot after a successful
// register/login/google response.
func (s *Store) SetCredentials(token string, user model.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for k, v := range map[string]string{keyToken: token, keyUser: string(userJSON)} {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO session_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return fmt.Errorf("store %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Clear removes all stored credentials. Used on logout regardless of whether
// the server call succeeded.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session_meta`)
	return err
}

func (s *Store) getMeta(k string) (string, bool) {
	var v string
	if err := s.db.Get(&v, `SELECT v FROM session_meta WHERE k = ?`, k); err != nil {
		// sql.ErrNoRows means logged out; anything else is treated the same way.
		return "", false
	}
	return v, true
}

// Token implements api.TokenSource. Empty when logged out.
func (s *Store) Token() string {
	v, _ := s.getMeta(keyToken)
	return v
}

// CurrentUser returns the cached user snapshot from the last auth response.
func (s *Store) CurrentUser() (model.User, bool) {
	v, ok := s.getMeta(keyUser)
	if !ok {
		return model.User{}, false
	}
	var u model.User
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return model.User{}, false
	}
	return u, true
}

// Role returns the cached user's role.
func (s *Store) Role() (model.Role, bool) {
	u, ok := s.CurrentUser()
	if !ok {
		return "", false
	}
	return u.RoleType, u.RoleType != ""
}

// IsLoggedIn reports whether a token is present and not yet expired. The
// expiry test is purely local (no network call).
func (s *Store) IsLoggedIn() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	claims, err := DecodeToken(token)
	if err != nil {
		return false
	}
	return !claims.Expired(s.now())
}
