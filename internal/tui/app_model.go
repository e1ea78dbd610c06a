package tui

import (
	"context"
	"time"

	"liftoff-cli/internal/api"
	"liftoff-cli/internal/chat"
	"liftoff-cli/internal/model"
	"liftoff-cli/internal/state"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewProjects view = iota
	viewBoard
	viewSprints
	viewMembers
	viewInvitations
	viewChat
)

const (
	loadTimeout = 15 * time.Second
	chatTimeout = 60 * time.Second
	noticeTTL   = 4 * time.Second
)

// Deps is everything the interactive UI needs from the command layer.
type Deps struct {
	API     *api.Client
	Analyst *chat.Analyst // nil hides the analyst view
	User    model.User
	Role    model.Role
}

type appModel struct {
	deps Deps

	width  int
	height int
	view   view

	selected *state.SelectedProject
	projects *state.Collection[model.Project]
	sprints  *state.Collection[model.Sprint]
	members  *state.Collection[model.ProjectMember]
	tasks    *state.Collection[model.Task]
	board    *state.Board

	invitations []model.ProjectInvitation

	projectsList    list.Model
	sprintsList     list.Model
	membersList     list.Model
	invitationsList list.Model

	boardSel boardSelection

	// mineOnly scopes the board fetch for employees ("assigned to me" by
	// default, toggleable to the full list). Shared by pointer so the board's
	// resync closure sees toggles made after it was built.
	mineOnly *bool

	search    textinput.Model
	searching bool

	chatInput   textinput.Model
	dialogInput textinput.Model

	dialogs *DialogHost
	notices *NoticeHost

	pendingDeleteTaskID    int64
	pendingDeleteProjectID int64
	pendingRemoveMemberID  int64
}

func newAppModel(deps Deps) appModel {
	m := appModel{
		deps:     deps,
		view:     viewProjects,
		selected: state.NewSelectedProject(),
		projects: state.NewCollection(state.MatchProject),
		sprints:  state.NewCollection(state.MatchSprint),
		members:  state.NewCollection(state.MatchMember),
		tasks:    state.NewCollection(state.MatchTask),
		dialogs:  NewDialogHost(),
		notices:  NewNoticeHost(),
	}

	mineOnly := !deps.Role.IsFounder()
	m.mineOnly = &mineOnly

	m.projectsList = newList(nil)
	m.sprintsList = newList(nil)
	m.membersList = newList(nil)
	m.invitationsList = newList(nil)

	m.search = textinput.New()
	m.search.Placeholder = "search"
	m.search.Prompt = "/ "
	m.search.CharLimit = 120

	m.chatInput = textinput.New()
	m.chatInput.Placeholder = "Ask the AI Analyst"
	m.chatInput.Prompt = "> "
	m.chatInput.CharLimit = 2000

	m.dialogInput = textinput.New()
	m.dialogInput.Prompt = "> "
	m.dialogInput.CharLimit = 254

	return m
}

func (m appModel) Init() tea.Cmd { return m.loadProjects() }

// Messages carried back from the async edges.

type projectsLoadedMsg struct{ err error }

type boardLoadedMsg struct{ err error }

type sprintsLoadedMsg struct{ err error }

type membersLoadedMsg struct{ err error }

type invitationsLoadedMsg struct {
	items []model.ProjectInvitation
	err   error
}

type moveSettledMsg struct{ err error }

type taskDeletedMsg struct{ err error }

type projectDeletedMsg struct{ err error }

type memberRemovedMsg struct{ err error }

type invitationSettledMsg struct {
	accepted bool
	err      error
}

type invitationSentMsg struct{ err error }

type chatSettledMsg struct{ err error }

type noticeExpiredMsg struct{ seq int }

func (m appModel) loadProjects() tea.Cmd {
	deps := m.deps
	col := m.projects
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		loader := deps.API.ListEmployeeProjects
		if deps.Role.IsFounder() {
			loader = deps.API.ListFounderProjects
		}
		return projectsLoadedMsg{err: col.Load(ctx, loader)}
	}
}

func (m appModel) loadBoard(projectID int64) tea.Cmd {
	apiClient := m.deps.API
	mineOnly := m.mineOnly
	col := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		err := col.Load(ctx, func(ctx context.Context) ([]model.Task, error) {
			return fetchBoardTasks(ctx, apiClient, projectID, *mineOnly)
		})
		return boardLoadedMsg{err: err}
	}
}

func fetchBoardTasks(ctx context.Context, apiClient *api.Client, projectID int64, mineOnly bool) ([]model.Task, error) {
	if mineOnly {
		return apiClient.ListMyTasks(ctx, projectID)
	}
	return apiClient.ListProjectTasks(ctx, projectID)
}

func (m appModel) loadSprints(projectID int64) tea.Cmd {
	apiClient := m.deps.API
	col := m.sprints
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		err := col.Load(ctx, func(ctx context.Context) ([]model.Sprint, error) {
			return apiClient.ListProjectSprints(ctx, projectID)
		})
		return sprintsLoadedMsg{err: err}
	}
}

func (m appModel) loadMembers(projectID int64) tea.Cmd {
	apiClient := m.deps.API
	col := m.members
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		err := col.Load(ctx, func(ctx context.Context) ([]model.ProjectMember, error) {
			return apiClient.ListProjectMembers(ctx, projectID)
		})
		return membersLoadedMsg{err: err}
	}
}

func (m appModel) loadInvitations(projectID int64) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		var (
			items []model.ProjectInvitation
			err   error
		)
		if deps.Role.IsFounder() {
			items, err = deps.API.ListProjectInvitations(ctx, projectID)
		} else {
			items, err = deps.API.MyInvitations(ctx)
		}
		return invitationsLoadedMsg{items: items, err: err}
	}
}

func (m appModel) moveTask(taskID int64, to model.TaskStatus) tea.Cmd {
	board := m.board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return moveSettledMsg{err: board.Move(ctx, taskID, to)}
	}
}

func (m appModel) deleteTask(taskID int64) tea.Cmd {
	apiClient := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return taskDeletedMsg{err: apiClient.DeleteTask(ctx, taskID)}
	}
}

func (m appModel) deleteProject(projectID int64) tea.Cmd {
	apiClient := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return projectDeletedMsg{err: apiClient.DeleteProject(ctx, projectID)}
	}
}

func (m appModel) removeMember(projectID, userID int64) tea.Cmd {
	apiClient := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return memberRemovedMsg{err: apiClient.RemoveMember(ctx, projectID, userID)}
	}
}

func (m appModel) respondInvitation(invitationID int64, accept bool) tea.Cmd {
	apiClient := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		var err error
		if accept {
			_, err = apiClient.AcceptInvitation(ctx, invitationID)
		} else {
			_, err = apiClient.RejectInvitation(ctx, invitationID)
		}
		return invitationSettledMsg{accepted: accept, err: err}
	}
}

func (m appModel) sendInvitation(projectID int64, email string) tea.Cmd {
	apiClient := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		_, err := apiClient.SendInvitationByEmail(ctx, projectID, email)
		return invitationSentMsg{err: err}
	}
}

func (m appModel) sendChat(text string) tea.Cmd {
	analyst := m.deps.Analyst
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		return chatSettledMsg{err: analyst.Send(ctx, text)}
	}
}

func noticeExpiry(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (m *appModel) showNotice(text string, isError bool) tea.Cmd {
	return noticeExpiry(m.notices.Show(text, isError))
}

// applySearch pushes the shared term into every collection, re-buckets the
// board from the filtered task view, and rebuilds the visible lists.
func (m *appModel) applySearch() {
	term := m.search.Value()
	m.projects.Filter(term)
	m.sprints.Filter(term)
	m.members.Filter(term)
	m.tasks.Filter(term)
	if m.board != nil {
		m.board.SetTasks(m.tasks.Items())
		m.boardSel = clampBoardSelection(m.board.Columns(), m.boardSel)
	}
	m.refreshLists()
}

func (m *appModel) refreshLists() {
	cur, _ := m.selected.Current()

	projectItems := make([]list.Item, 0, m.projects.Len())
	for _, p := range m.projects.Items() {
		projectItems = append(projectItems, projectRow{project: p, current: p.ID == cur.ID})
	}
	m.projectsList.SetItems(projectItems)

	sprintItems := make([]list.Item, 0, m.sprints.Len())
	for _, s := range m.sprints.Items() {
		sprintItems = append(sprintItems, sprintRow{sprint: s})
	}
	m.sprintsList.SetItems(sprintItems)

	memberItems := make([]list.Item, 0, m.members.Len())
	for _, mem := range m.members.Items() {
		memberItems = append(memberItems, memberRow{member: mem})
	}
	m.membersList.SetItems(memberItems)

	invItems := make([]list.Item, 0, len(m.invitations))
	for _, inv := range m.invitations {
		invItems = append(invItems, invitationRow{invitation: inv})
	}
	m.invitationsList.SetItems(invItems)
}

// selectProject switches the shared selection and kicks off every per-project
// load in parallel.
func (m *appModel) selectProject(p model.Project) tea.Cmd {
	m.selected.Set(p)
	apiClient := m.deps.API
	projectID := p.ID
	mineOnly := m.mineOnly
	tasksCol := m.tasks
	m.board = state.NewBoard(m.deps.User, m.deps.Role,
		func(ctx context.Context, taskID int64, status model.TaskStatus) error {
			_, err := apiClient.UpdateTaskStatus(ctx, taskID, status)
			return err
		},
		// Resync refreshes the master copy and hands the board the filtered
		// view, so a failed move cannot wipe the active search term.
		func(ctx context.Context) ([]model.Task, error) {
			err := tasksCol.Load(ctx, func(ctx context.Context) ([]model.Task, error) {
				return fetchBoardTasks(ctx, apiClient, projectID, *mineOnly)
			})
			if err != nil {
				return nil, err
			}
			return tasksCol.Items(), nil
		},
	)
	m.boardSel = boardSelection{}
	m.view = viewBoard
	return tea.Batch(
		m.loadBoard(projectID),
		m.loadSprints(projectID),
		m.loadMembers(projectID),
		m.loadInvitations(projectID),
	)
}

func (m *appModel) resizeLists() {
	h := m.height - 7
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.projectsList.SetSize(w, h)
	m.sprintsList.SetSize(w, h)
	m.membersList.SetSize(w, h)
	m.invitationsList.SetSize(w, h)
	m.search.Width = w - 4
	m.chatInput.Width = w - 4
}
