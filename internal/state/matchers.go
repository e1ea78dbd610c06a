package state

import "liftoff-cli/internal/model"

// Per-entity matchers with the fixed field sets the search box covers.

func MatchTask(t model.Task, term string) bool {
	assignee := ""
	if t.Assignee != nil {
		assignee = t.Assignee.FullName
	}
	return MatchFields(term, t.Title, t.Description, assignee)
}

func MatchProject(p model.Project, term string) bool {
	return MatchFields(term, p.Name, p.Description)
}

func MatchSprint(s model.Sprint, term string) bool {
	return MatchFields(term, s.Name, s.Goal)
}

func MatchMember(m model.ProjectMember, term string) bool {
	return MatchFields(term, m.UserName, m.UserEmail)
}
