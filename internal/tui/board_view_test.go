package tui

import (
	"strings"
	"testing"

	"liftoff-cli/internal/model"
	"liftoff-cli/internal/state"
)

func testColumns() []state.Column {
	return []state.Column{
		{Status: model.TaskStatusPlanned, Tasks: []model.Task{
			{ID: 1, Title: "Wire login", Status: model.TaskStatusPlanned, Priority: model.TaskPriorityHigh},
			{ID: 2, Title: "Draft schema", Status: model.TaskStatusPlanned, Priority: model.TaskPriorityLow},
		}},
		{Status: model.TaskStatusInProgress, Tasks: []model.Task{
			{ID: 3, Title: "Build board", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityMedium},
		}},
		{Status: model.TaskStatusCompleted},
	}
}

func TestClampFollowsTaskID(t *testing.T) {
	cols := testColumns()
	// The task moved columns between renders; selection must follow the id.
	sel := clampBoardSelection(cols, boardSelection{Col: 0, Row: 0, TaskID: 3})
	if sel.Col != 1 || sel.Row != 0 {
		t.Fatalf("selection did not follow task 3: %+v", sel)
	}
}

func TestClampEmptyColumn(t *testing.T) {
	cols := testColumns()
	sel := clampBoardSelection(cols, boardSelection{Col: 2, Row: 5})
	if sel.Col != 2 || sel.Row != -1 {
		t.Fatalf("empty column selection = %+v", sel)
	}
	if _, ok := selectedTask(cols, sel); ok {
		t.Fatalf("selectedTask reported a task in an empty column")
	}
}

func TestClampOutOfRange(t *testing.T) {
	cols := testColumns()
	sel := clampBoardSelection(cols, boardSelection{Col: -3, Row: 9})
	if sel.Col != 0 || sel.Row != 1 {
		t.Fatalf("unexpected clamp: %+v", sel)
	}
	if sel.TaskID != 2 {
		t.Fatalf("TaskID not backfilled from clamped position: %+v", sel)
	}
}

func TestRenderBoardShowsAllColumnsAndCounts(t *testing.T) {
	out := renderBoard(testColumns(), boardSelection{}, 90, 20)
	for _, want := range []string{"Planned (2)", "In Progress (1)", "Completed (0)", "Wire login", "Build board", "(empty)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("board output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderBoardStableDimensions(t *testing.T) {
	out := renderBoard(testColumns(), boardSelection{}, 60, 12)
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("height = %d, want 12", len(lines))
	}
}
