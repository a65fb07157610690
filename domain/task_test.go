package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseStage_Normalizes(t *testing.T) {
	cases := map[string]Stage{
		"":            StageTodo,
		"todo":        StageTodo,
		"TODO":        StageTodo,
		"In Progress": StageInProgress,
		"in_progress": StageInProgress,
		"in-progress": StageInProgress,
		" Completed ": StageCompleted,
	}
	for in, want := range cases {
		got, err := ParseStage(in)
		if err != nil {
			t.Fatalf("ParseStage(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseStage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseStage_RejectsUnknown(t *testing.T) {
	_, err := ParseStage("blocked")
	if !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestParsePriority_DefaultsToMedium(t *testing.T) {
	got, err := ParsePriority("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != PriorityMedium {
		t.Fatalf("expected medium, got %q", got)
	}
	if got, _ := ParsePriority("HIGH"); got != PriorityHigh {
		t.Fatalf("expected high, got %q", got)
	}
	if _, err := ParsePriority("urgent"); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestParseActivityType(t *testing.T) {
	got, err := ParseActivityType("In Progress")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ActivityInProgress {
		t.Fatalf("expected in-progress, got %q", got)
	}
	if _, err := ParseActivityType("deployed"); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestTaskClone_DoesNotShareSlices(t *testing.T) {
	deadline := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	src := &Task{
		Title:      "Design API",
		Team:       []string{"u1", "u2"},
		Assets:     []string{"a.png"},
		SubTasks:   []SubTask{{Title: "draft"}},
		Activities: []Activity{{Type: ActivityAssigned}},
		Deadline:   &deadline,
	}

	clone := src.Clone()
	if !reflect.DeepEqual(src, clone) {
		t.Fatalf("clone differs from source:\n%#v\n%#v", src, clone)
	}

	clone.Team[0] = "u9"
	clone.Assets = append(clone.Assets, "b.png")
	clone.SubTasks[0].Title = "changed"
	clone.Activities[0].Type = ActivityBug
	*clone.Deadline = deadline.AddDate(0, 1, 0)

	if src.Team[0] != "u1" || len(src.Assets) != 1 || src.SubTasks[0].Title != "draft" || src.Activities[0].Type != ActivityAssigned {
		t.Fatalf("source mutated through clone: %#v", src)
	}
	if !src.Deadline.Equal(deadline) {
		t.Fatalf("source deadline mutated: %v", src.Deadline)
	}
}

func TestUniqueMembers(t *testing.T) {
	got := UniqueMembers([]string{"u2", "u1", " u2 ", "", "u3", "u1"})
	want := []string{"u2", "u1", "u3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UniqueMembers = %v, want %v", got, want)
	}
}

func TestTaskHasMember(t *testing.T) {
	task := &Task{Team: []string{"u1", "u2"}}
	if !task.HasMember("u2") || task.HasMember("u3") {
		t.Fatalf("unexpected membership result for %v", task.Team)
	}
}

func TestStoreError_KeepsDomainErrors(t *testing.T) {
	if err := StoreError("get task", ErrTaskNotFound); !IsDomainError(err, ErrCodeNotFound) {
		t.Fatalf("expected not found to pass through, got %v", err)
	}
	if err := StoreError("get task", errors.New("connection reset")); !IsDomainError(err, ErrCodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
