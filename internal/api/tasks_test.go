package api

import (
	"context"
	"net/http"
	"testing"

	"liftoff-cli/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func statusPtr(s model.TaskStatus) *model.TaskStatus { return &s }

func prioPtr(p model.TaskPriority) *model.TaskPriority { return &p }

func TestFilterTasksQueryEncoding(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/4/tasks/filter" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))

	_, err := c.FilterTasks(context.Background(), 4, model.TaskFilters{
		AssigneeID: int64Ptr(7),
		SprintID:   int64Ptr(model.BacklogSprintID),
		Status:     statusPtr(model.TaskStatusPlanned),
		Priority:   prioPtr(model.TaskPriorityHigh),
		Unassigned: true,
	})
	if err != nil {
		t.Fatalf("FilterTasks: %v", err)
	}
	want := "assigneeId=7&priority=HIGH&sprintId=-1&status=PLANNED&unassigned=true"
	if gotQuery != want {
		t.Fatalf("query = %q, want %q", gotQuery, want)
	}
}

func TestFilterTasksOmitsUnsetFilters(t *testing.T) {
	var gotQuery string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	if _, err := c.FilterTasks(context.Background(), 4, model.TaskFilters{}); err != nil {
		t.Fatalf("FilterTasks: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("unset filters must not appear in the query: %q", gotQuery)
	}
}

func TestUpdateTaskStatusBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tasks/11/status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := jsonDecode(r, &body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["status"] != "COMPLETED" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Write([]byte(`{"id":11,"title":"t","status":"COMPLETED","priority":"LOW"}`))
	}))
	task, err := c.UpdateTaskStatus(context.Background(), 11, model.TaskStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	if task.Status != model.TaskStatusCompleted {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestMyTasksPath(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/2/tasks/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"title":"mine","status":"PLANNED","priority":"LOW"}]`))
	}))
	tasks, err := c.ListMyTasks(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListMyTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "mine" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}
