package tui

import (
	"fmt"
	"strings"

	"liftoff-cli/internal/model"
	"liftoff-cli/internal/state"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// boardSelection tracks the highlighted card. TaskID is the stable handle:
// index positions shift when the board is rebuilt after a reload or move.
type boardSelection struct {
	Col    int
	Row    int
	TaskID int64
}

func columnLabel(st model.TaskStatus) string {
	switch st {
	case model.TaskStatusPlanned:
		return "Planned"
	case model.TaskStatusInProgress:
		return "In Progress"
	case model.TaskStatusCompleted:
		return "Completed"
	default:
		return string(st)
	}
}

func indexOfTask(cols []state.Column, taskID int64) (int, int, bool) {
	if taskID == 0 {
		return 0, 0, false
	}
	for ci := range cols {
		for ti := range cols[ci].Tasks {
			if cols[ci].Tasks[ti].ID == taskID {
				return ci, ti, true
			}
		}
	}
	return 0, 0, false
}

func clampBoardSelection(cols []state.Column, sel boardSelection) boardSelection {
	if len(cols) == 0 {
		return boardSelection{Row: -1}
	}

	// Prefer stable selection by task id when the task is still on the board.
	if ci, ti, ok := indexOfTask(cols, sel.TaskID); ok {
		sel.Col = ci
		sel.Row = ti
	} else {
		sel.TaskID = 0
	}

	if sel.Col < 0 {
		sel.Col = 0
	}
	if sel.Col >= len(cols) {
		sel.Col = len(cols) - 1
	}

	n := len(cols[sel.Col].Tasks)
	if n == 0 {
		sel.Row = -1
		return sel
	}
	if sel.Row < 0 {
		sel.Row = 0
	}
	if sel.Row >= n {
		sel.Row = n - 1
	}
	sel.TaskID = cols[sel.Col].Tasks[sel.Row].ID
	return sel
}

func selectedTask(cols []state.Column, sel boardSelection) (model.Task, bool) {
	sel = clampBoardSelection(cols, sel)
	if sel.Col < 0 || sel.Col >= len(cols) {
		return model.Task{}, false
	}
	if sel.Row < 0 || sel.Row >= len(cols[sel.Col].Tasks) {
		return model.Task{}, false
	}
	return cols[sel.Col].Tasks[sel.Row], true
}

func renderBoard(cols []state.Column, sel boardSelection, width, height int) string {
	n := len(cols)
	if n == 0 {
		return normalizePane("", width, height)
	}
	sel = clampBoardSelection(cols, sel)

	gap := 2
	avail := width - gap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < 12 {
		colW = 12
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	headerSelectedStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	muted := styleMuted()

	// Whitespace defines the card, not borders: stacked bordered cards read
	// like one continuous list in narrow columns.
	cardStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	cardSelectedStyle := cardStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	innerW := colW - 2
	if innerW < 1 {
		innerW = 1
	}

	renderCard := func(t model.Task, selected bool) string {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			title = "(untitled)"
		}
		titleStyle := lipgloss.NewStyle().Bold(true)
		if selected {
			titleStyle = titleStyle.Foreground(colorSelectedFg).Background(colorSelectedBg)
		} else if t.Status == model.TaskStatusCompleted {
			titleStyle = faintIfDark(lipgloss.NewStyle()).Foreground(colorMuted).Strikethrough(true)
		}

		lines := []string{titleStyle.Render(truncateText(title, innerW))}

		meta := make([]string, 0, 2)
		prio := priorityStyleFor(string(t.Priority))
		if selected {
			prio = prio.Background(colorSelectedBg)
		}
		meta = append(meta, prio.Render(strings.ToLower(string(t.Priority))))
		if t.Assignee != nil && strings.TrimSpace(t.Assignee.FullName) != "" {
			as := styleAssignee
			if selected {
				as = as.Background(colorSelectedBg)
			}
			meta = append(meta, as.Render("@"+strings.TrimSpace(t.Assignee.FullName)))
		}
		metaLine := strings.Join(meta, " ")
		if xansi.StringWidth(metaLine) > innerW {
			metaLine = truncateText(metaLine, innerW)
		}
		lines = append(lines, metaLine)

		inner := normalizePane(strings.Join(lines, "\n"), innerW, 0)
		if selected {
			return cardSelectedStyle.Render(inner)
		}
		return cardStyle.Render(inner)
	}

	renderCol := func(colIdx int, c state.Column) string {
		head := fmt.Sprintf("%s (%d)", columnLabel(c.Status), len(c.Tasks))
		head = truncateText(head, colW)
		hs := headerStyle
		if colIdx == sel.Col {
			hs = headerSelectedStyle
		}

		lines := []string{hs.Width(colW).Render(head)}
		if len(c.Tasks) == 0 {
			lines = append(lines, muted.Render("(empty)"))
			return normalizePane(strings.Join(lines, "\n"), colW, height)
		}
		lines = append(lines, "")
		for i, t := range c.Tasks {
			card := renderCard(t, colIdx == sel.Col && i == sel.Row)
			lines = append(lines, strings.Split(card, "\n")...)
			if i < len(c.Tasks)-1 {
				sepW := colW - 2
				if sepW < 0 {
					sepW = 0
				}
				lines = append(lines, muted.Render(" "+strings.Repeat("─", sepW)+" "))
			}
		}
		return normalizePane(strings.Join(lines, "\n"), colW, height)
	}

	rendered := make([]string, 0, n)
	for i, c := range cols {
		rendered = append(rendered, renderCol(i, c))
	}

	out := rendered[0]
	sep := strings.Repeat(" ", gap)
	for i := 1; i < len(rendered); i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, rendered[i])
	}
	return normalizePane(out, width, height)
}
