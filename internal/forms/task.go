package forms

import (
	"liftoff-cli/internal/model"
)

// TaskForm is the editable task payload. A zero ID means create.
type TaskForm struct {
	ID          int64
	Title       string `validate:"required"`
	Description string
	Status      string `validate:"required"`
	Priority    string `validate:"required"`
	SprintID    int64
	AssigneeID  int64
}

// Validate checks required fields and that status/priority belong to their
// closed value sets, then yields the task for the parent to submit.
func (f TaskForm) Validate() (model.Task, error) {
	if err := requiredFields(f); err != nil {
		return model.Task{}, err
	}
	status, ok := model.NormalizeTaskStatus(f.Status)
	if !ok {
		return model.Task{}, ruleErr("status", "Status", "invalid status %q", f.Status)
	}
	priority, err := model.ParseTaskPriority(f.Priority)
	if err != nil {
		return model.Task{}, ruleErr("priority", "Priority", "invalid priority %q", f.Priority)
	}
	return model.Task{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Status:      status,
		Priority:    priority,
		SprintID:    f.SprintID,
		AssigneeID:  f.AssigneeID,
	}, nil
}
