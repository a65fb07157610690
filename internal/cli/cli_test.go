package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/repository/sqlite"
)

func useSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("APP_ENV", "test")
	return path
}

func seed(t *testing.T, path string, trashed int, live int) {
	t.Helper()
	db, err := sqlite.Open(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sqlite.Close(db)

	tasks := sqlite.NewTaskRepository(db)
	ctx := context.Background()
	for i := 0; i < trashed+live; i++ {
		task, err := tasks.Create(ctx, &domain.Task{Title: "t", Stage: domain.StageTodo, Priority: domain.PriorityLow, Team: []string{"u1"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i < trashed {
			trash := true
			if _, err := tasks.UpdateMany(ctx, repository.TaskFilter{IDs: []string{task.ID}}, repository.TaskPatch{Trashed: &trash}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	return cmd, &out
}

func TestTrashRestore(t *testing.T) {
	path := useSQLite(t)
	seed(t, path, 3, 2)

	cmd, out := testCommand()
	if err := runTrashAction(cmd, "restoreAll", "restored"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "3 task(s) restored" {
		t.Fatalf("output = %q", got)
	}
}

func TestTrashPurge(t *testing.T) {
	path := useSQLite(t)
	seed(t, path, 2, 1)

	cmd, out := testCommand()
	if err := runTrashAction(cmd, "deleteAll", "deleted"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "2 task(s) deleted" {
		t.Fatalf("output = %q", got)
	}
}

func TestStats(t *testing.T) {
	path := useSQLite(t)
	seed(t, path, 1, 2)

	statsUser, statsAdmin = "u1", false
	t.Cleanup(func() { statsUser, statsAdmin = "", false })

	cmd, out := testCommand()
	if err := runStats(cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var stats domain.Statistics
	if err := json.Unmarshal(out.Bytes(), &stats); err != nil {
		t.Fatalf("unexpected error: %v (%s)", err, out.String())
	}
	if stats.TotalTasks != 2 {
		t.Fatalf("totalTasks = %d, want 2", stats.TotalTasks)
	}
}

func TestStats_RequiresCaller(t *testing.T) {
	statsUser, statsAdmin = "", false

	cmd, _ := testCommand()
	if err := runStats(cmd, nil); err == nil {
		t.Fatalf("expected an error without --user or --admin")
	}
}
