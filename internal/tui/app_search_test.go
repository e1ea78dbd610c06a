package tui

import (
	"context"
	"testing"

	"liftoff-cli/internal/model"
	"liftoff-cli/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

func loadedTaskModel(t *testing.T) appModel {
	t.Helper()

	m := newAppModel(Deps{User: model.User{ID: 1, FullName: "F"}, Role: model.RoleFounder})
	m.board = state.NewBoard(m.deps.User, m.deps.Role, nil, nil)

	err := m.tasks.Load(context.Background(), func(context.Context) ([]model.Task, error) {
		return []model.Task{
			{ID: 1, Title: "Fix login redirect", Status: model.TaskStatusPlanned},
			{ID: 2, Title: "Deploy staging", Status: model.TaskStatusInProgress},
			{ID: 3, Title: "Write release notes", Status: model.TaskStatusPlanned,
				Assignee: &model.User{ID: 9, FullName: "Ada Lovelace"}},
		}, nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.board.SetTasks(m.tasks.Items())
	return m
}

func boardTaskIDs(b *state.Board) []int64 {
	var ids []int64
	for _, t := range b.Tasks() {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestSearchTermRebucketsBoard(t *testing.T) {
	m := loadedTaskModel(t)

	m.search.SetValue("login")
	m.applySearch()
	if ids := boardTaskIDs(m.board); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("board after filter(login) = %v, want [1]", ids)
	}

	// Assignee name is part of the matched field set.
	m.search.SetValue("ada")
	m.applySearch()
	if ids := boardTaskIDs(m.board); len(ids) != 1 || ids[0] != 3 {
		t.Fatalf("board after filter(ada) = %v, want [3]", ids)
	}

	m.search.SetValue("")
	m.applySearch()
	if ids := boardTaskIDs(m.board); len(ids) != 3 {
		t.Fatalf("clearing the term must restore the full board, got %v", ids)
	}
}

func TestSearchKeyOpensOnBoard(t *testing.T) {
	m := loadedTaskModel(t)
	m.view = viewBoard

	updated, _ := m.updateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	got := updated.(appModel)
	if !got.searching {
		t.Fatalf("pressing / on the board must enter search mode")
	}
}
