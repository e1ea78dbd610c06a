package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"liftoff-cli/internal/model"
)

// ErrNotTaskOwner gates drag moves: a non-founder may only move tasks
// currently assigned to themselves. The rejection happens before any network
// call and leaves the board untouched.
var ErrNotTaskOwner = errors.New("only the assignee may move this task")

// StatusUpdater performs the authoritative status change on the backend.
type StatusUpdater func(ctx context.Context, taskID int64, status model.TaskStatus) error

// Reloader fetches a fresh task list; it is the recovery strategy after a
// failed move (full resync, no local rollback arithmetic).
type Reloader func(ctx context.Context) ([]model.Task, error)

type Column struct {
	Status model.TaskStatus
	Tasks  []model.Task
}

// Board is the status-bucketed task view with optimistic-but-gated moves:
// tentative drop -> backend confirm (commit) | backend reject (full resync).
type Board struct {
	mu   sync.Mutex
	cols []Column

	user   model.User
	role   model.Role
	update StatusUpdater
	reload Reloader
}

func NewBoard(user model.User, role model.Role, update StatusUpdater, reload Reloader) *Board {
	b := &Board{user: user, role: role, update: update, reload: reload}
	b.setTasksLocked(nil)
	return b
}

// SetTasks rebuilds the columns from a task list. Statuses are normalized
// (legacy TODO folds into PLANNED); tasks with unknown statuses are dropped
// from all columns rather than failing.
func (b *Board) SetTasks(tasks []model.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setTasksLocked(tasks)
}

func (b *Board) setTasksLocked(tasks []model.Task) {
	cols := make([]Column, len(model.TaskStatuses))
	for i, st := range model.TaskStatuses {
		cols[i] = Column{Status: st}
	}
	for _, t := range tasks {
		st, ok := model.NormalizeTaskStatus(string(t.Status))
		if !ok {
			continue
		}
		t.Status = st
		for i := range cols {
			if cols[i].Status == st {
				cols[i].Tasks = append(cols[i].Tasks, t)
				break
			}
		}
	}
	b.cols = cols
}

// Columns returns a deep copy in fixed column order.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Column, len(b.cols))
	for i, c := range b.cols {
		tasks := make([]model.Task, len(c.Tasks))
		copy(tasks, c.Tasks)
		out[i] = Column{Status: c.Status, Tasks: tasks}
	}
	return out
}

// Column returns a copy of one column's tasks.
func (b *Board) Column(status model.TaskStatus) []model.Task {
	for _, c := range b.Columns() {
		if c.Status == status {
			return c.Tasks
		}
	}
	return nil
}

// Tasks flattens the board back into a single list (column order).
func (b *Board) Tasks() []model.Task {
	var out []model.Task
	for _, c := range b.Columns() {
		out = append(out, c.Tasks...)
	}
	return out
}

func (b *Board) findLocked(taskID int64) (colIdx, taskIdx int, ok bool) {
	for ci := range b.cols {
		for ti := range b.cols[ci].Tasks {
			if b.cols[ci].Tasks[ti].ID == taskID {
				return ci, ti, true
			}
		}
	}
	return 0, 0, false
}

// Move transitions a task to another column.
//
// Order matters: the permission gate runs before any network call; the
// in-memory column membership only changes after the backend confirmed the
// new status; a backend failure triggers a full reload so the board matches
// the server again.
func (b *Board) Move(ctx context.Context, taskID int64, to model.TaskStatus) error {
	b.mu.Lock()
	ci, ti, ok := b.findLocked(taskID)
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("task %d not on board", taskID)
	}
	task := b.cols[ci].Tasks[ti]
	if b.cols[ci].Status == to {
		b.mu.Unlock()
		return nil
	}
	if !b.role.IsFounder() && !task.AssignedTo(b.user.ID) {
		b.mu.Unlock()
		return ErrNotTaskOwner
	}
	b.mu.Unlock()

	if err := b.update(ctx, taskID, to); err != nil {
		b.resync(ctx)
		return fmt.Errorf("update task status: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// Re-find: the board may have been rebuilt while the call was in flight.
	ci, ti, ok = b.findLocked(taskID)
	if !ok {
		return nil
	}
	task = b.cols[ci].Tasks[ti]
	task.Status = to
	b.cols[ci].Tasks = append(b.cols[ci].Tasks[:ti], b.cols[ci].Tasks[ti+1:]...)
	for i := range b.cols {
		if b.cols[i].Status == to {
			b.cols[i].Tasks = append(b.cols[i].Tasks, task)
			break
		}
	}
	return nil
}

func (b *Board) resync(ctx context.Context) {
	if b.reload == nil {
		return
	}
	tasks, err := b.reload(ctx)
	if err != nil {
		// Keep the pre-move state; the move was never applied locally.
		return
	}
	b.SetTasks(tasks)
}

// Reorder moves a task inside its own column. Presentation only: no backend
// call, no status change.
func (b *Board) Reorder(status model.TaskStatus, from, to int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ci := range b.cols {
		if b.cols[ci].Status != status {
			continue
		}
		tasks := b.cols[ci].Tasks
		if from < 0 || from >= len(tasks) || to < 0 || to >= len(tasks) || from == to {
			return
		}
		t := tasks[from]
		tasks = append(tasks[:from], tasks[from+1:]...)
		tasks = append(tasks[:to], append([]model.Task{t}, tasks[to:]...)...)
		b.cols[ci].Tasks = tasks
		return
	}
}
