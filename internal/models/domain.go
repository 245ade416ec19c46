package models

import (
	"fmt"
	"strings"
)

// TaskStatus defines allowed lifecycle states for tasks.
type TaskStatus string

const (
	TaskBacklog    TaskStatus = "backlog"
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskPriority defines allowed task priorities.
type TaskPriority string

const (
	PriorityCritical TaskPriority = "critical"
	PriorityHigh     TaskPriority = "high"
	PriorityMedium   TaskPriority = "medium"
	PriorityLow      TaskPriority = "low"
)

// BugStatus defines allowed lifecycle states for bugs.
type BugStatus string

const (
	BugNew          BugStatus = "new"
	BugAcknowledged BugStatus = "acknowledged"
	BugInProgress   BugStatus = "in_progress"
	BugNeedsQA      BugStatus = "needs_qa"
	BugClosed       BugStatus = "closed"
)

// BugSeverity defines allowed bug severities.
type BugSeverity string

const (
	SeverityCritical BugSeverity = "critical"
	SeverityMedium   BugSeverity = "medium"
	SeverityMinor    BugSeverity = "minor"
)

// Role defines the ranked team roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLead      Role = "lead"
	RoleDeveloper Role = "developer"
	RoleQA        Role = "qa"
	RoleViewer    Role = "viewer"
)

// EntityKind names the entity kinds that carry guild-sequence numbers
// and appear in the audit trail.
type EntityKind string

const (
	KindProject       EntityKind = "project"
	KindSprint        EntityKind = "sprint"
	KindTask          EntityKind = "task"
	KindBug           EntityKind = "bug"
	KindChecklist     EntityKind = "checklist"
	KindChecklistItem EntityKind = "checklist_item"
	KindComment       EntityKind = "comment"
	KindMember        EntityKind = "member"
	KindSetting       EntityKind = "setting"
)

const (
	DefaultTaskStatus  = TaskBacklog
	DefaultPriority    = PriorityMedium
	DefaultBugStatus   = BugNew
	DefaultBugSeverity = SeverityMedium
)

var validTaskStatuses = map[TaskStatus]struct{}{
	TaskBacklog:    {},
	TaskTodo:       {},
	TaskInProgress: {},
	TaskBlocked:    {},
	TaskReview:     {},
	TaskDone:       {},
}

var validPriorities = map[TaskPriority]struct{}{
	PriorityCritical: {},
	PriorityHigh:     {},
	PriorityMedium:   {},
	PriorityLow:      {},
}

var validBugStatuses = map[BugStatus]struct{}{
	BugNew:          {},
	BugAcknowledged: {},
	BugInProgress:   {},
	BugNeedsQA:      {},
	BugClosed:       {},
}

var validSeverities = map[BugSeverity]struct{}{
	SeverityCritical: {},
	SeverityMedium:   {},
	SeverityMinor:    {},
}

// roleRanks is the fixed total order used for authorization checks.
var roleRanks = map[Role]int{
	RoleAdmin:     5,
	RoleLead:      4,
	RoleDeveloper: 3,
	RoleQA:        2,
	RoleViewer:    1,
}

// activeTaskStatuses are the statuses that count toward workload and
// staleness. Done and backlog items are excluded.
var activeTaskStatuses = []TaskStatus{
	TaskTodo,
	TaskInProgress,
	TaskBlocked,
	TaskReview,
}

// openBugStatuses are all bug statuses other than closed.
var openBugStatuses = []BugStatus{
	BugNew,
	BugAcknowledged,
	BugInProgress,
	BugNeedsQA,
}

func IsValidTaskStatus(status TaskStatus) bool {
	_, ok := validTaskStatuses[status]
	return ok
}

func IsValidPriority(priority TaskPriority) bool {
	_, ok := validPriorities[priority]
	return ok
}

func IsValidBugStatus(status BugStatus) bool {
	_, ok := validBugStatuses[status]
	return ok
}

func IsValidSeverity(severity BugSeverity) bool {
	_, ok := validSeverities[severity]
	return ok
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	value := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidTaskStatus(value) {
		return "", fmt.Errorf("invalid task status: %s", value)
	}
	return value, nil
}

func ParsePriority(raw string) (TaskPriority, error) {
	value := TaskPriority(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("priority is required")
	}
	if !IsValidPriority(value) {
		return "", fmt.Errorf("invalid priority: %s", value)
	}
	return value, nil
}

func ParseBugStatus(raw string) (BugStatus, error) {
	value := BugStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidBugStatus(value) {
		return "", fmt.Errorf("invalid bug status: %s", value)
	}
	return value, nil
}

func ParseSeverity(raw string) (BugSeverity, error) {
	value := BugSeverity(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("severity is required")
	}
	if !IsValidSeverity(value) {
		return "", fmt.Errorf("invalid severity: %s", value)
	}
	return value, nil
}

func ParseRole(raw string) (Role, error) {
	value := Role(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("role is required")
	}
	if _, ok := roleRanks[value]; !ok {
		return "", fmt.Errorf("invalid role: %s", value)
	}
	return value, nil
}

// RoleRank returns the numeric rank of a role, or 0 for unknown roles.
// An unassigned member has rank 0 and fails every rank check.
func RoleRank(role Role) int {
	return roleRanks[role]
}

// RolesByRank returns the five roles ordered highest rank first.
func RolesByRank() []Role {
	return []Role{RoleAdmin, RoleLead, RoleDeveloper, RoleQA, RoleViewer}
}

func ActiveTaskStatusStrings() []string {
	out := make([]string, 0, len(activeTaskStatuses))
	for _, status := range activeTaskStatuses {
		out = append(out, string(status))
	}
	return out
}

func OpenBugStatusStrings() []string {
	out := make([]string, 0, len(openBugStatuses))
	for _, status := range openBugStatuses {
		out = append(out, string(status))
	}
	return out
}
