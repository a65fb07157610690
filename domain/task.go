package domain

import (
	"strings"
	"time"
)

type Stage string

const (
	StageTodo       Stage = "todo"
	StageInProgress Stage = "in-progress"
	StageCompleted  Stage = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists priorities in their canonical chart order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type ActivityType string

const (
	ActivityAssigned   ActivityType = "assigned"
	ActivityStarted    ActivityType = "started"
	ActivityInProgress ActivityType = "in-progress"
	ActivityBug        ActivityType = "bug"
	ActivityCompleted  ActivityType = "completed"
	ActivityCommented  ActivityType = "commented"
)

// Task is a unit of trackable work. Activities and SubTasks are owned by the
// task and have no lifecycle of their own.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Date       time.Time  `json:"date"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Priority   Priority   `json:"priority"`
	Stage      Stage      `json:"stage"`
	Team       []string   `json:"team"`
	Assets     []string   `json:"assets"`
	SubTasks   []SubTask  `json:"subTasks"`
	Activities []Activity `json:"activities"`
	IsTrashed  bool       `json:"isTrashed"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Activity is one entry of a task timeline.
type Activity struct {
	Type     ActivityType `json:"type"`
	Activity string       `json:"activity,omitempty"`
	Date     time.Time    `json:"date"`
	By       string       `json:"by,omitempty"`
}

type SubTask struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Tag   string    `json:"tag"`
}

// TaskView is a task with its team and activity actors resolved through the
// user directory.
type TaskView struct {
	Task
	Team       []UserSummary  `json:"team"`
	Activities []ActivityView `json:"activities"`
}

// ActivityView is a timeline entry with its actor resolved.
type ActivityView struct {
	Activity
	By UserSummary `json:"by"`
}

// HasMember reports whether userID is part of the task team.
func (t *Task) HasMember(userID string) bool {
	if t == nil {
		return false
	}
	for _, id := range t.Team {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can derive new tasks without sharing
// slices with the source.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	out.Team = append([]string(nil), t.Team...)
	out.Assets = append([]string(nil), t.Assets...)
	out.SubTasks = append([]SubTask(nil), t.SubTasks...)
	out.Activities = append([]Activity(nil), t.Activities...)
	if t.Deadline != nil {
		d := *t.Deadline
		out.Deadline = &d
	}
	return &out
}

func canonical(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(value)
}

// ParseStage normalizes user input into a Stage. Empty input yields the default.
func ParseStage(value string) (Stage, error) {
	switch s := Stage(canonical(value)); s {
	case "":
		return StageTodo, nil
	case StageTodo, StageInProgress, StageCompleted:
		return s, nil
	default:
		return "", NewError(ErrCodeInvalid, "invalid stage: "+value)
	}
}

// ParsePriority normalizes user input into a Priority. Empty input yields the default.
func ParsePriority(value string) (Priority, error) {
	switch p := Priority(canonical(value)); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", NewError(ErrCodeInvalid, "invalid priority: "+value)
	}
}

func ParseActivityType(value string) (ActivityType, error) {
	switch a := ActivityType(canonical(value)); a {
	case "":
		return ActivityAssigned, nil
	case ActivityAssigned, ActivityStarted, ActivityInProgress, ActivityBug, ActivityCompleted, ActivityCommented:
		return a, nil
	default:
		return "", NewError(ErrCodeInvalid, "invalid activity type: "+value)
	}
}

// UniqueMembers drops empty and repeated ids while keeping the first occurrence order.
func UniqueMembers(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
