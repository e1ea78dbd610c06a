package tui

import (
	"errors"
	"fmt"
	"strings"

	"liftoff-cli/internal/api"
	"liftoff-cli/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

// showErr surfaces a failed call. Authentication failures get the recovery
// hint instead of the raw error: the session is gone and every further call
// will fail the same way.
func (m *appModel) showErr(prefix string, err error) tea.Cmd {
	if api.IsAuthError(err) {
		return m.showNotice("Session expired. Quit and run `liftoff login` to sign in again.", true)
	}
	return m.showNotice(prefix+": "+err.Error(), true)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case noticeExpiredMsg:
		m.notices.Expire(msg.seq)
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			return m, m.showErr("Failed to load projects", msg.err)
		}
		m.refreshLists()
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			return m, m.showErr("Failed to load tasks", msg.err)
		}
		m.board.SetTasks(m.tasks.Items())
		m.boardSel = clampBoardSelection(m.board.Columns(), m.boardSel)
		return m, nil

	case sprintsLoadedMsg:
		if msg.err != nil {
			return m, m.showErr("Failed to load sprints", msg.err)
		}
		m.refreshLists()
		return m, nil

	case membersLoadedMsg:
		if msg.err != nil {
			return m, m.showErr("Failed to load members", msg.err)
		}
		m.refreshLists()
		return m, nil

	case invitationsLoadedMsg:
		if msg.err != nil {
			return m, m.showErr("Failed to load invitations", msg.err)
		}
		m.invitations = msg.items
		m.refreshLists()
		return m, nil

	case moveSettledMsg:
		m.boardSel = clampBoardSelection(m.board.Columns(), m.boardSel)
		if msg.err != nil {
			if errors.Is(msg.err, state.ErrNotTaskOwner) {
				return m, m.showNotice("You can only move tasks assigned to you.", true)
			}
			return m, m.showErr("Move failed", msg.err)
		}
		return m, nil

	case taskDeletedMsg:
		if msg.err != nil {
			return m, m.showErr("Delete failed", msg.err)
		}
		cur, ok := m.selected.Current()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.showNotice("Task deleted.", false), m.loadBoard(cur.ID))

	case projectDeletedMsg:
		if msg.err != nil {
			return m, m.showErr("Delete failed", msg.err)
		}
		m.selected.Clear()
		m.view = viewProjects
		return m, tea.Batch(m.showNotice("Project deleted.", false), m.loadProjects())

	case memberRemovedMsg:
		if msg.err != nil {
			return m, m.showErr("Remove failed", msg.err)
		}
		cur, ok := m.selected.Current()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.showNotice("Member removed.", false), m.loadMembers(cur.ID))

	case invitationSettledMsg:
		if msg.err != nil {
			return m, m.showErr("Invitation update failed", msg.err)
		}
		note := "Invitation rejected."
		if msg.accepted {
			note = "Invitation accepted."
		}
		cmds := []tea.Cmd{m.showNotice(note, false)}
		if cur, ok := m.selected.Current(); ok {
			cmds = append(cmds, m.loadInvitations(cur.ID))
		} else {
			cmds = append(cmds, m.loadInvitations(0))
		}
		return m, tea.Batch(cmds...)

	case invitationSentMsg:
		if msg.err != nil {
			return m, m.showErr("Invitation failed", msg.err)
		}
		cmds := []tea.Cmd{m.showNotice("Invitation sent.", false)}
		if cur, ok := m.selected.Current(); ok {
			cmds = append(cmds, m.loadInvitations(cur.ID))
		}
		return m, tea.Batch(cmds...)

	case chatSettledMsg:
		// A failed round-trip already appended the error placeholder to the
		// transcript; nothing extra to surface here.
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// An open dialog captures all input.
	if _, active := m.dialogs.Active(); active {
		return m.updateDialogKey(msg)
	}

	if m.searching {
		return m.updateSearchKey(msg)
	}

	if m.view == viewChat {
		return m.updateChatKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		if m.view == viewProjects || m.view == viewBoard || m.view == viewSprints || m.view == viewMembers {
			m.searching = true
			m.search.Focus()
			return m, nil
		}
	case "r":
		return m, m.reloadCurrentView()
	case "esc", "backspace":
		if m.view != viewProjects {
			m.view = viewProjects
			m.selected.Clear()
			m.refreshLists()
			return m, m.loadProjects()
		}
		return m, nil
	case "1", "2", "3", "4", "5":
		return m.switchView(msg.String())
	}

	switch m.view {
	case viewProjects:
		return m.updateProjectsKey(msg)
	case viewBoard:
		return m.updateBoardKey(msg)
	case viewSprints:
		var cmd tea.Cmd
		m.sprintsList, cmd = m.sprintsList.Update(msg)
		return m, cmd
	case viewMembers:
		return m.updateMembersKey(msg)
	case viewInvitations:
		return m.updateInvitationsKey(msg)
	}
	return m, nil
}

func (m appModel) switchView(key string) (tea.Model, tea.Cmd) {
	if _, ok := m.selected.Current(); !ok {
		return m, nil
	}
	switch key {
	case "1":
		m.view = viewBoard
	case "2":
		m.view = viewSprints
	case "3":
		m.view = viewMembers
	case "4":
		m.view = viewInvitations
	case "5":
		if m.deps.Analyst == nil {
			return m, m.showNotice("AI Analyst is not configured.", true)
		}
		m.view = viewChat
		m.chatInput.Focus()
	}
	return m, nil
}

func (m appModel) reloadCurrentView() tea.Cmd {
	cur, ok := m.selected.Current()
	if !ok {
		return m.loadProjects()
	}
	switch m.view {
	case viewBoard:
		return m.loadBoard(cur.ID)
	case viewSprints:
		return m.loadSprints(cur.ID)
	case viewMembers:
		return m.loadMembers(cur.ID)
	case viewInvitations:
		return m.loadInvitations(cur.ID)
	default:
		return m.loadProjects()
	}
}

func (m appModel) updateDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d, _ := m.dialogs.Active()

	if d.Input {
		switch msg.String() {
		case "esc", "ctrl+g":
			m.dialogInput.Blur()
			closed, ok := m.dialogs.Resolve(DialogResult{})
			if !ok {
				return m, nil
			}
			return m.dialogClosed(closed)
		case "enter":
			value := strings.TrimSpace(m.dialogInput.Value())
			m.dialogInput.Blur()
			closed, ok := m.dialogs.Resolve(DialogResult{Confirmed: true, Value: value})
			if !ok {
				return m, nil
			}
			return m.dialogClosed(closed)
		}
		var cmd tea.Cmd
		m.dialogInput, cmd = m.dialogInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "tab", "left", "right":
		m.dialogs.toggleFocus()
		return m, nil
	case "esc", "ctrl+g":
		closed, ok := m.dialogs.Resolve(DialogResult{})
		if !ok {
			return m, nil
		}
		return m.dialogClosed(closed)
	case "enter":
		closed, ok := m.dialogs.Resolve(DialogResult{Confirmed: m.dialogs.focusedConfirm()})
		if !ok {
			return m, nil
		}
		return m.dialogClosed(closed)
	}
	return m, nil
}

func (m appModel) dialogClosed(closed DialogClose) (tea.Model, tea.Cmd) {
	if !closed.Result.Confirmed {
		return m, nil
	}
	switch closed.Tag {
	case "delete-task":
		return m, m.deleteTask(m.pendingDeleteTaskID)
	case "delete-project":
		return m, m.deleteProject(m.pendingDeleteProjectID)
	case "remove-member":
		cur, ok := m.selected.Current()
		if !ok {
			return m, nil
		}
		return m, m.removeMember(cur.ID, m.pendingRemoveMemberID)
	case "invite-email":
		if closed.Result.Value == "" {
			return m, nil
		}
		cur, ok := m.selected.Current()
		if !ok {
			return m, nil
		}
		return m, m.sendInvitation(cur.ID, closed.Result.Value)
	}
	return m, nil
}

func (m appModel) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m appModel) updateChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewBoard
		m.chatInput.Blur()
		return m, nil
	case "enter":
		if m.deps.Analyst.Busy() {
			return m, nil
		}
		text := m.chatInput.Value()
		m.chatInput.SetValue("")
		return m, m.sendChat(text)
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m appModel) updateProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if row, ok := m.projectsList.SelectedItem().(projectRow); ok {
			cmd := m.selectProject(row.project)
			m.refreshLists()
			return m, cmd
		}
		return m, nil
	case "d":
		if !m.deps.Role.IsFounder() {
			return m, m.showNotice("Only the founder can delete a project.", true)
		}
		row, ok := m.projectsList.SelectedItem().(projectRow)
		if !ok {
			return m, nil
		}
		m.pendingDeleteProjectID = row.project.ID
		m.dialogs.Open("delete-project", Dialog{
			Title:        "Delete project",
			Body:         fmt.Sprintf("Delete %q and all of its work?", row.project.Name),
			ConfirmLabel: "Delete",
		})
		return m, nil
	}
	var cmd tea.Cmd
	m.projectsList, cmd = m.projectsList.Update(msg)
	return m, cmd
}

func (m appModel) updateBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.board.Columns()
	sel := clampBoardSelection(cols, m.boardSel)

	switch msg.String() {
	case "h", "left":
		sel.Col--
		sel.Row = 0
		sel.TaskID = 0
	case "l", "right":
		sel.Col++
		sel.Row = 0
		sel.TaskID = 0
	case "j", "down":
		sel.Row++
		sel.TaskID = 0
	case "k", "up":
		sel.Row--
		sel.TaskID = 0
	case "H", "shift+left":
		return m.moveSelected(cols, sel, -1)
	case "L", "shift+right":
		return m.moveSelected(cols, sel, +1)
	case "J":
		if t, ok := selectedTask(cols, sel); ok {
			m.board.Reorder(t.Status, sel.Row, sel.Row+1)
			m.boardSel = clampBoardSelection(m.board.Columns(), boardSelection{Col: sel.Col, Row: sel.Row + 1})
		}
		return m, nil
	case "K":
		if t, ok := selectedTask(cols, sel); ok {
			m.board.Reorder(t.Status, sel.Row, sel.Row-1)
			m.boardSel = clampBoardSelection(m.board.Columns(), boardSelection{Col: sel.Col, Row: sel.Row - 1})
		}
		return m, nil
	case "t":
		if m.deps.Role.IsFounder() {
			return m, nil
		}
		*m.mineOnly = !*m.mineOnly
		note := "Showing all tasks."
		if *m.mineOnly {
			note = "Showing tasks assigned to you."
		}
		cur, ok := m.selected.Current()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.showNotice(note, false), m.loadBoard(cur.ID))
	case "d":
		t, ok := selectedTask(cols, sel)
		if !ok {
			return m, nil
		}
		if !m.deps.Role.IsFounder() {
			return m, m.showNotice("Only the founder can delete tasks.", true)
		}
		m.pendingDeleteTaskID = t.ID
		m.dialogs.Open("delete-task", Dialog{
			Title:        "Delete task",
			Body:         fmt.Sprintf("Delete %q?", t.Title),
			ConfirmLabel: "Delete",
		})
		return m, nil
	default:
		return m, nil
	}

	m.boardSel = clampBoardSelection(cols, sel)
	return m, nil
}

func (m appModel) moveSelected(cols []state.Column, sel boardSelection, dir int) (tea.Model, tea.Cmd) {
	t, ok := selectedTask(cols, sel)
	if !ok {
		return m, nil
	}
	target := sel.Col + dir
	if target < 0 || target >= len(cols) {
		return m, nil
	}
	// Keep following the task into its new column.
	m.boardSel = boardSelection{Col: target, TaskID: t.ID}
	return m, m.moveTask(t.ID, cols[target].Status)
}

func (m appModel) updateMembersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "d" {
		if !m.deps.Role.IsFounder() {
			return m, m.showNotice("Only the founder can remove members.", true)
		}
		row, ok := m.membersList.SelectedItem().(memberRow)
		if !ok {
			return m, nil
		}
		m.pendingRemoveMemberID = row.member.UserID
		m.dialogs.Open("remove-member", Dialog{
			Title:        "Remove member",
			Body:         fmt.Sprintf("Remove %s from the project?", row.member.UserName),
			ConfirmLabel: "Remove",
		})
		return m, nil
	}
	var cmd tea.Cmd
	m.membersList, cmd = m.membersList.Update(msg)
	return m, cmd
}

func (m appModel) updateInvitationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i":
		if !m.deps.Role.IsFounder() {
			return m, m.showNotice("Only the founder can invite members.", true)
		}
		m.dialogInput.SetValue("")
		m.dialogInput.Placeholder = "dev@startup.dev"
		m.dialogInput.Focus()
		m.dialogs.Open("invite-email", Dialog{
			Title:        "Invite member",
			Body:         "Email address to invite:",
			ConfirmLabel: "Send",
			Input:        true,
		})
		return m, nil
	case "a", "x":
		if m.deps.Role.IsFounder() {
			return m, m.showNotice("Invitations are answered by the invited user.", true)
		}
		row, ok := m.invitationsList.SelectedItem().(invitationRow)
		if !ok {
			return m, nil
		}
		if row.invitation.Status.Terminal() {
			return m, m.showNotice("This invitation was already answered.", true)
		}
		return m, m.respondInvitation(row.invitation.ID, msg.String() == "a")
	}
	var cmd tea.Cmd
	m.invitationsList, cmd = m.invitationsList.Update(msg)
	return m, cmd
}
