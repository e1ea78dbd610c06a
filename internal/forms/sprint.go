package forms

import (
	"fmt"
	"time"

	"liftoff-cli/internal/model"
)

// SprintForm is the editable sprint payload. A zero ID means create.
type SprintForm struct {
	ID        int64
	Name      string `validate:"required"`
	Goal      string
	StartDate string `validate:"required"`
	EndDate   string `validate:"required"`
}

// SprintContext is what the cross-field validator needs from the workspace:
// the parent project's start date (may be empty) and the project's existing
// sprints for the overlap check.
type SprintContext struct {
	ProjectStartDate string
	Existing         []model.Sprint
}

const dateLayout = "2006-01-02"

// parseDate accepts plain dates and full timestamps (the backend sends both).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t.Truncate(24 * time.Hour), nil
}

// Overlap is the interval predicate used by the sprint validator:
// [s1,e1] and [s2,e2] overlap iff s1 <= e2 && e1 >= s2.
func Overlap(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}

// Validate runs the sprint rules as one unit, short-circuiting in order:
// required fields, date parsing, (a) start before end, (b) not before the
// project start, (c) no overlap with another sprint of the same project
// (editing excludes the sprint itself). The returned RuleError names the
// failing rule and, for overlap, the conflicting sprint.
func (f SprintForm) Validate(ctx SprintContext) (model.Sprint, error) {
	if err := requiredFields(f); err != nil {
		return model.Sprint{}, err
	}

	start, err := parseDate(f.StartDate)
	if err != nil {
		return model.Sprint{}, ruleErr("date", "StartDate", "start date: %v", err)
	}
	end, err := parseDate(f.EndDate)
	if err != nil {
		return model.Sprint{}, ruleErr("date", "EndDate", "end date: %v", err)
	}

	if start.After(end) {
		return model.Sprint{}, ruleErr("date-order", "StartDate",
			"start date %s must precede end date %s", f.StartDate, f.EndDate)
	}

	if ctx.ProjectStartDate != "" {
		projStart, perr := parseDate(ctx.ProjectStartDate)
		if perr == nil && start.Before(projStart) {
			return model.Sprint{}, ruleErr("project-start", "StartDate",
				"sprint cannot start before the project start date %s", ctx.ProjectStartDate)
		}
	}

	for _, other := range ctx.Existing {
		if other.ID == f.ID && f.ID != 0 {
			continue
		}
		os, oerr := parseDate(other.StartDate)
		if oerr != nil {
			continue
		}
		oe, oerr := parseDate(other.EndDate)
		if oerr != nil {
			continue
		}
		if Overlap(start, end, os, oe) {
			return model.Sprint{}, ruleErr("overlap", "StartDate",
				"sprint dates overlap existing sprint %q (%s to %s)", other.Name, other.StartDate, other.EndDate)
		}
	}

	return model.Sprint{
		ID:        f.ID,
		Name:      f.Name,
		Goal:      f.Goal,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}, nil
}
