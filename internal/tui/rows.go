package tui

import (
	"fmt"
	"strings"

	"liftoff-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type projectRow struct {
	project model.Project
	current bool
}

func (r projectRow) FilterValue() string { return r.project.Name }
func (r projectRow) Title() string {
	if r.current {
		return r.project.Name + " ●"
	}
	return r.project.Name
}
func (r projectRow) Description() string {
	desc := strings.TrimSpace(r.project.Description)
	if desc == "" {
		return fmt.Sprintf("#%d", r.project.ID)
	}
	return desc
}

type sprintRow struct {
	sprint model.Sprint
}

func (r sprintRow) FilterValue() string { return r.sprint.Name }
func (r sprintRow) Title() string {
	name := strings.TrimSpace(r.sprint.Name)
	if name == "" {
		name = "(unnamed sprint)"
	}
	if r.sprint.Status != "" {
		return fmt.Sprintf("%s  [%s]", name, r.sprint.Status)
	}
	return name
}
func (r sprintRow) Description() string {
	return fmt.Sprintf("%s → %s", r.sprint.StartDate, r.sprint.EndDate)
}

type memberRow struct {
	member model.ProjectMember
}

func (r memberRow) FilterValue() string {
	return strings.TrimSpace(r.member.UserName + " " + r.member.UserEmail)
}
func (r memberRow) Title() string {
	name := strings.TrimSpace(r.member.UserName)
	if name == "" {
		name = r.member.UserEmail
	}
	return name
}
func (r memberRow) Description() string {
	return fmt.Sprintf("%s  %s", r.member.UserEmail, r.member.RoleInProject)
}

type invitationRow struct {
	invitation model.ProjectInvitation
}

func (r invitationRow) FilterValue() string {
	return strings.TrimSpace(r.invitation.InvitedUserName + " " + r.invitation.InvitedUserEmail + " " + r.invitation.ProjectName)
}
func (r invitationRow) Title() string {
	who := strings.TrimSpace(r.invitation.InvitedUserName)
	if who == "" {
		who = r.invitation.InvitedUserEmail
	}
	if who == "" {
		who = r.invitation.ProjectName
	}
	return fmt.Sprintf("%s  [%s]", who, r.invitation.Status)
}
func (r invitationRow) Description() string {
	if r.invitation.ProjectName != "" {
		return r.invitation.ProjectName
	}
	return fmt.Sprintf("project #%d", r.invitation.ProjectID)
}

func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	// We render our own header, footer, and filter line, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Filtering is handled by the shared search term, not per-list.
	l.SetFilteringEnabled(false)
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
