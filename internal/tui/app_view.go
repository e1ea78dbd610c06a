package tui

import (
	"fmt"
	"strings"

	"liftoff-cli/internal/chat"
	"liftoff-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	width := m.width
	if width < 40 {
		width = 40
	}
	bodyHeight := m.height - 5
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	header := m.viewHeader(width)

	var body string
	switch m.view {
	case viewProjects:
		body = m.projectsList.View()
	case viewBoard:
		body = renderBoard(m.board.Columns(), m.boardSel, width, bodyHeight)
	case viewSprints:
		body = m.sprintsList.View()
	case viewMembers:
		body = m.membersList.View()
	case viewInvitations:
		body = m.invitationsList.View()
	case viewChat:
		body = m.viewChat(width, bodyHeight)
	}

	lines := []string{header}
	if m.searching || strings.TrimSpace(m.search.Value()) != "" {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, body, m.viewStatusLine(width), m.viewFooter())
	out := strings.Join(lines, "\n")

	if d, active := m.dialogs.Active(); active {
		var modal string
		if d.Input {
			modal = renderInputModal(60, d, m.dialogInput.View())
		} else {
			modal = renderConfirmModal(60, d, m.dialogs.focusedConfirm())
		}
		return overlayCentered(modal, width, m.height)
	}
	return out
}

func (m appModel) viewHeader(width int) string {
	crumbs := []string{"Liftoff"}
	if cur, ok := m.selected.Current(); ok {
		crumbs = append(crumbs, cur.Name, viewLabel(m.view))
	}
	left := lipgloss.NewStyle().Bold(true).Render(strings.Join(crumbs, " / "))
	right := styleMuted().Render(fmt.Sprintf("%s (%s)", m.deps.User.FullName, m.deps.Role))
	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func viewLabel(v view) string {
	switch v {
	case viewBoard:
		return "Board"
	case viewSprints:
		return "Sprints"
	case viewMembers:
		return "Members"
	case viewInvitations:
		return "Invitations"
	case viewChat:
		return "AI Analyst"
	default:
		return "Projects"
	}
}

func (m appModel) viewStatusLine(width int) string {
	n, ok := m.notices.Current()
	if !ok {
		return ""
	}
	st := lipgloss.NewStyle().Foreground(colorAccent)
	if n.IsError {
		st = lipgloss.NewStyle().Foreground(colorErrorFg)
	}
	return st.Render(truncateText(n.Text, width))
}

func (m appModel) viewFooter() string {
	var hint string
	switch m.view {
	case viewProjects:
		hint = "enter: open  /: search  d: delete  r: reload  q: quit"
	case viewBoard:
		hint = "hjkl: navigate  H/L: move task  J/K: reorder  /: search  d: delete  1-5: views  esc: projects"
		if !m.deps.Role.IsFounder() {
			hint = "hjkl: navigate  H/L: move task  J/K: reorder  /: search  t: mine/all  1-5: views  esc: projects"
		}
	case viewChat:
		hint = "enter: send  esc: back"
	case viewInvitations:
		hint = "a: accept  x: reject  1-5: views  esc: projects"
		if m.deps.Role.IsFounder() {
			hint = "i: invite  1-5: views  r: reload  esc: projects"
		}
	default:
		hint = "/: search  d: remove  1-5: views  r: reload  esc: projects"
	}
	return lipgloss.NewStyle().Faint(true).Render(hint)
}

func (m appModel) viewChat(width, height int) string {
	if m.deps.Analyst == nil {
		return normalizePane("AI Analyst is not configured.", width, height)
	}

	userStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	aiLabel := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	errStyle := lipgloss.NewStyle().Foreground(colorErrorFg)

	var b strings.Builder
	for _, msg := range m.deps.Analyst.Messages() {
		switch msg.Sender {
		case model.ChatSenderUser:
			b.WriteString(userStyle.Render("You") + "  " + msg.Message + "\n\n")
		default:
			b.WriteString(aiLabel.Render("Analyst") + "\n")
			if msg.Message == chat.ErrorReply {
				b.WriteString(errStyle.Render(msg.Message) + "\n\n")
			} else {
				b.WriteString(renderMarkdown(msg.Message, width-2) + "\n\n")
			}
		}
	}
	if m.deps.Analyst.Busy() {
		b.WriteString(styleMuted().Render("Analyst is thinking…") + "\n")
	}

	transcript := b.String()
	// Keep the tail visible: the transcript grows downward toward the input.
	lines := strings.Split(strings.TrimRight(transcript, "\n"), "\n")
	avail := height - 2
	if avail < 1 {
		avail = 1
	}
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}

	input := m.chatInput.View()
	if m.deps.Analyst.Busy() {
		input = styleMuted().Render("(waiting for reply)")
	}
	return normalizePane(strings.Join(lines, "\n")+"\n\n"+input, width, height)
}

func renderConfirmModal(width int, d Dialog, confirmFocused bool) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(d.ConfirmLabel)
	cancel := btnActive.Render(d.CancelLabel)
	if confirmFocused {
		confirm = btnActive.Render(d.ConfirmLabel)
		cancel = btnBase.Render(d.CancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{d.Body, "", controls, "", help}, "\n")
	return renderModalBox(width, d.Title, content)
}

func renderInputModal(width int, d Dialog, inputView string) string {
	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("enter: " + strings.ToLower(d.ConfirmLabel) + "   esc: cancel")
	content := strings.Join([]string{d.Body, "", inputView, "", help}, "\n")
	return renderModalBox(width, d.Title, content)
}
