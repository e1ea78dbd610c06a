package forms

import (
	"errors"
	"strings"
	"testing"
	"time"

	"liftoff-cli/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := parseDate(s)
	if err != nil {
		t.Fatalf("parseDate(%q): %v", s, err)
	}
	return d
}

func TestOverlapPredicate(t *testing.T) {
	cases := []struct {
		s1, e1, s2, e2 string
		want           bool
	}{
		{"2024-01-01", "2024-01-10", "2024-01-05", "2024-01-20", true},
		{"2024-01-05", "2024-01-20", "2024-01-01", "2024-01-10", true},
		{"2024-01-01", "2024-01-10", "2024-01-10", "2024-01-20", true}, // touching endpoints overlap
		{"2024-01-01", "2024-01-10", "2024-01-11", "2024-01-20", false},
		{"2024-02-01", "2024-02-05", "2024-01-01", "2024-01-31", false},
		{"2024-01-03", "2024-01-04", "2024-01-01", "2024-01-10", true}, // containment
	}
	for _, tc := range cases {
		got := Overlap(mustDate(t, tc.s1), mustDate(t, tc.e1), mustDate(t, tc.s2), mustDate(t, tc.e2))
		if got != tc.want {
			t.Fatalf("Overlap(%s,%s,%s,%s) = %v, want %v", tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
		}
	}
}

func TestSprintRequiredFields(t *testing.T) {
	_, err := SprintForm{Name: "", StartDate: "2024-01-01", EndDate: "2024-01-10"}.Validate(SprintContext{})
	var re *RuleError
	if !errors.As(err, &re) || re.Rule != "required" {
		t.Fatalf("expected required rule, got %v", err)
	}
}

func TestSprintDateOrderRule(t *testing.T) {
	_, err := SprintForm{Name: "s", StartDate: "2024-01-10", EndDate: "2024-01-01"}.Validate(SprintContext{})
	var re *RuleError
	if !errors.As(err, &re) || re.Rule != "date-order" {
		t.Fatalf("expected date-order rule, got %v", err)
	}
}

func TestSprintProjectStartRule(t *testing.T) {
	ctx := SprintContext{ProjectStartDate: "2024-03-01"}
	_, err := SprintForm{Name: "s", StartDate: "2024-02-20", EndDate: "2024-03-10"}.Validate(ctx)
	var re *RuleError
	if !errors.As(err, &re) || re.Rule != "project-start" {
		t.Fatalf("expected project-start rule, got %v", err)
	}
}

func TestSprintOverlapNamesConflict(t *testing.T) {
	ctx := SprintContext{Existing: []model.Sprint{
		{ID: 1, Name: "Sprint A", StartDate: "2024-01-01", EndDate: "2024-01-10"},
	}}
	_, err := SprintForm{Name: "Sprint B", StartDate: "2024-01-05", EndDate: "2024-01-20"}.Validate(ctx)
	var re *RuleError
	if !errors.As(err, &re) || re.Rule != "overlap" {
		t.Fatalf("expected overlap rule, got %v", err)
	}
	if !strings.Contains(re.Message, "Sprint A") {
		t.Fatalf("overlap error must name the conflicting sprint: %q", re.Message)
	}
}

func TestSprintEditExcludesItselfFromOverlap(t *testing.T) {
	ctx := SprintContext{Existing: []model.Sprint{
		{ID: 5, Name: "Self", StartDate: "2024-01-01", EndDate: "2024-01-10"},
	}}
	s, err := SprintForm{ID: 5, Name: "Self", StartDate: "2024-01-02", EndDate: "2024-01-09"}.Validate(ctx)
	if err != nil {
		t.Fatalf("editing a sprint must not conflict with itself: %v", err)
	}
	if s.ID != 5 || s.Name != "Self" {
		t.Fatalf("unexpected sprint: %+v", s)
	}
}

func TestSprintRuleOrderShortCircuits(t *testing.T) {
	// Both date-order and overlap would fail; date-order must win.
	ctx := SprintContext{Existing: []model.Sprint{
		{ID: 1, Name: "A", StartDate: "2024-01-01", EndDate: "2024-01-31"},
	}}
	_, err := SprintForm{Name: "B", StartDate: "2024-01-20", EndDate: "2024-01-05"}.Validate(ctx)
	var re *RuleError
	if !errors.As(err, &re) || re.Rule != "date-order" {
		t.Fatalf("first failing rule must win, got %v", err)
	}
}

func TestTaskFormValidate(t *testing.T) {
	_, err := TaskForm{Title: "", Status: "PLANNED", Priority: "LOW"}.Validate()
	var re *RuleError
	if !errors.As(err, &re) || re.Rule != "required" {
		t.Fatalf("expected required rule, got %v", err)
	}

	_, err = TaskForm{Title: "t", Status: "BOGUS", Priority: "LOW"}.Validate()
	if !errors.As(err, &re) || re.Rule != "status" {
		t.Fatalf("expected status rule, got %v", err)
	}

	task, err := TaskForm{Title: "t", Status: "todo", Priority: "high"}.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if task.Status != model.TaskStatusPlanned || task.Priority != model.TaskPriorityHigh {
		t.Fatalf("normalization failed: %+v", task)
	}
}
