package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"liftoff-cli/internal/model"
	"liftoff-cli/internal/session"

	"github.com/golang-jwt/jwt/v5"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// seedSession writes a logged-in session database for the given user and
// returns its path.
func seedSession(t *testing.T, user model.User) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.db")
	store, err := session.Open(path)
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	defer store.Close()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.Email,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if err := store.SetCredentials(token, user); err != nil {
		t.Fatalf("store credentials: %v", err)
	}
	return path
}

func TestProjectsListScopedByRole(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/projects/founder":
			json.NewEncoder(w).Encode([]model.Project{{ID: 1, Name: "Apollo"}})
		case "/projects/employee":
			json.NewEncoder(w).Encode([]model.Project{{ID: 2, Name: "Gemini"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	founderDB := seedSession(t, model.User{ID: 1, Email: "founder@startup.dev", FullName: "F", RoleType: model.RoleFounder})
	stdout, stderr, err := runCLI(t, []string{"--api-url", srv.URL, "--session-db", founderDB, "projects", "list"})
	if err != nil {
		t.Fatalf("projects list failed: %v\nstderr:\n%s", err, stderr)
	}
	var env struct {
		Data []model.Project `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout: %v\nstdout:\n%s", err, stdout)
	}
	if len(env.Data) != 1 || env.Data[0].Name != "Apollo" {
		t.Fatalf("unexpected founder projects: %+v", env.Data)
	}

	employeeDB := seedSession(t, model.User{ID: 2, Email: "dev@startup.dev", FullName: "E", RoleType: model.RoleEmployee})
	stdout, stderr, err = runCLI(t, []string{"--api-url", srv.URL, "--session-db", employeeDB, "projects", "list"})
	if err != nil {
		t.Fatalf("projects list failed: %v\nstderr:\n%s", err, stderr)
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout: %v\nstdout:\n%s", err, stdout)
	}
	if len(env.Data) != 1 || env.Data[0].Name != "Gemini" {
		t.Fatalf("unexpected employee projects: %+v", env.Data)
	}

	want := []string{"/projects/founder", "/projects/employee"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("unexpected request paths: %v", paths)
	}
}

func TestBoardMoveRejectsEmployeeOnForeignTask(t *testing.T) {
	var statusPut bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/projects/5/tasks":
			json.NewEncoder(w).Encode([]model.Task{
				{ID: 9, Title: "Ship onboarding", Status: model.TaskStatusPlanned, Priority: model.TaskPriorityHigh, AssigneeID: 42},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/tasks/9/status":
			statusPut = true
			json.NewEncoder(w).Encode(model.Task{ID: 9, Status: model.TaskStatusCompleted})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	db := seedSession(t, model.User{ID: 7, Email: "dev@startup.dev", FullName: "E", RoleType: model.RoleEmployee})
	_, stderr, err := runCLI(t, []string{"--api-url", srv.URL, "--session-db", db, "board", "move", "9", "COMPLETED", "--project", "5"})
	if err == nil {
		t.Fatal("expected move of a foreign task to fail for an employee")
	}
	if !strings.Contains(string(stderr), "assignee") {
		t.Fatalf("expected ownership error on stderr; got:\n%s", stderr)
	}
	if statusPut {
		t.Fatal("status update must not reach the backend when the gate rejects the move")
	}
}

func TestAuthFailureSuggestsLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer srv.Close()

	db := seedSession(t, model.User{ID: 1, Email: "founder@startup.dev", FullName: "F", RoleType: model.RoleFounder})
	_, stderr, err := runCLI(t, []string{"--api-url", srv.URL, "--session-db", db, "projects", "list"})
	if err == nil {
		t.Fatal("expected a 401 to fail the command")
	}
	if !strings.Contains(string(stderr), "liftoff login") {
		t.Fatalf("expected login recovery hint on stderr; got:\n%s", stderr)
	}
}

func TestCommandsRequireLogin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "session.db")
	_, _, err := runCLI(t, []string{"--session-db", db, "projects", "list"})
	if err == nil {
		t.Fatal("expected not-logged-in error")
	}
	if !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("unexpected error: %v", err)
	}
}
