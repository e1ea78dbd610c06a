package model

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleFounder  Role = "FOUNDER"
	RoleEmployee Role = "EMPLOYEE"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleFounder:
		return RoleFounder, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", fmt.Errorf("invalid role: %q", s)
	}
}

// IsFounder is the privilege gate: founders may create projects/sprints/tasks
// and manage membership; employees are restricted to assigned work.
func (r Role) IsFounder() bool { return r == RoleFounder }

type TaskStatus string

const (
	TaskStatusPlanned    TaskStatus = "PLANNED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses is the fixed board column order.
var TaskStatuses = []TaskStatus{TaskStatusPlanned, TaskStatusInProgress, TaskStatusCompleted}

// NormalizeTaskStatus maps a wire status onto the closed status set.
// The legacy "TODO" value is a synonym for PLANNED. Unknown values report
// ok=false so callers can drop them instead of guessing.
func NormalizeTaskStatus(s string) (TaskStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PLANNED", "TODO":
		return TaskStatusPlanned, true
	case "IN_PROGRESS":
		return TaskStatusInProgress, true
	case "COMPLETED":
		return TaskStatusCompleted, true
	default:
		return "", false
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(strings.ToUpper(strings.TrimSpace(s))) {
	case TaskPriorityLow:
		return TaskPriorityLow, nil
	case TaskPriorityMedium:
		return TaskPriorityMedium, nil
	case TaskPriorityHigh:
		return TaskPriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority: %q", s)
	}
}

type SprintStatus string

const (
	SprintStatusPlanned   SprintStatus = "PLANNED"
	SprintStatusActive    SprintStatus = "ACTIVE"
	SprintStatusCompleted SprintStatus = "COMPLETED"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
)

// Terminal reports whether the invitation can no longer change state.
func (s InvitationStatus) Terminal() bool {
	return s == InvitationAccepted || s == InvitationRejected
}

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	RoleType  Role   `json:"roleType"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type Sprint struct {
	ID        int64        `json:"id,omitempty"`
	Name      string       `json:"name"`
	Goal      string       `json:"goal,omitempty"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	ProjectID int64        `json:"projectId,omitempty"`
	Status    SprintStatus `json:"status,omitempty"`
	Progress  int          `json:"progress,omitempty"`
}

// BacklogSprintID is the pseudo-sprint sentinel for tasks not assigned to any
// real sprint; the filter endpoint understands it as "unassigned to a sprint".
const BacklogSprintID int64 = -1

type Task struct {
	ID          int64        `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	ProjectID   int64        `json:"projectId,omitempty"`
	ProjectName string       `json:"projectName,omitempty"`
	SprintID    int64        `json:"sprintId,omitempty"`
	SprintName  string       `json:"sprintName,omitempty"`
	Assignee    *User        `json:"assignee,omitempty"`
	AssigneeID  int64        `json:"assigneeId,omitempty"`
	Reporter    *User        `json:"reporter,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
}

// AssignedTo reports whether the task is currently assigned to the given user.
func (t Task) AssignedTo(userID int64) bool {
	if t.Assignee != nil {
		return t.Assignee.ID == userID
	}
	return t.AssigneeID != 0 && t.AssigneeID == userID
}

// TaskFilters mirrors the /tasks/filter query surface. Nil means "no
// constraint"; SprintID may be BacklogSprintID for the backlog bucket.
type TaskFilters struct {
	AssigneeID *int64
	SprintID   *int64
	Status     *TaskStatus
	Priority   *TaskPriority
	Unassigned bool
}

type ProjectMember struct {
	UserID        int64  `json:"userId"`
	UserName      string `json:"userName"`
	UserEmail     string `json:"userEmail"`
	ProjectID     int64  `json:"projectId"`
	ProjectName   string `json:"projectName,omitempty"`
	RoleInProject string `json:"roleInProject"`
	JoinedAt      string `json:"joinedAt,omitempty"`
}

type ProjectInvitation struct {
	ID               int64            `json:"id"`
	ProjectID        int64            `json:"projectId"`
	ProjectName      string           `json:"projectName,omitempty"`
	InvitedUserID    int64            `json:"invitedUserId,omitempty"`
	InvitedUserEmail string           `json:"invitedUserEmail,omitempty"`
	InvitedUserName  string           `json:"invitedUserName,omitempty"`
	InvitedByID      int64            `json:"invitedById,omitempty"`
	InvitedByName    string           `json:"invitedByName,omitempty"`
	Status           InvitationStatus `json:"status"`
	CreatedAt        string           `json:"createdAt,omitempty"`
	RespondedAt      string           `json:"respondedAt,omitempty"`
}

type Comment struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	TaskID    int64  `json:"taskId"`
	TaskTitle string `json:"taskTitle,omitempty"`
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Attachment struct {
	ID             int64  `json:"id"`
	FileName       string `json:"fileName"`
	FileURL        string `json:"fileUrl"`
	FileType       string `json:"fileType,omitempty"`
	FileSize       int64  `json:"fileSize,omitempty"`
	TaskID         int64  `json:"taskId,omitempty"`
	UploadedByID   int64  `json:"uploadedById,omitempty"`
	UploadedByName string `json:"uploadedByName,omitempty"`
	UploadedAt     string `json:"uploadedAt,omitempty"`
}

type TaskActivity struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"taskId"`
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	Action    string `json:"action"`
	OldValue  string `json:"oldValue,omitempty"`
	NewValue  string `json:"newValue,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderAI   ChatSender = "ai"
)

type ChatMessage struct {
	ID        int64      `json:"id,omitempty"`
	Message   string     `json:"message"`
	Sender    ChatSender `json:"sender"`
	CreatedAt string     `json:"createdAt,omitempty"`
}

// DashboardData is the per-project dashboard summary; the shape is
// backend-defined, so unknown keys are preserved as-is.
type DashboardData map[string]any
