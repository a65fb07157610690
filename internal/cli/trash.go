package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/domain"
	taskUC "github.com/fastygo/taskboard/usecase/task"
)

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Manage trashed tasks",
}

var trashPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Permanently delete every trashed task",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrashAction(cmd, taskUC.ActionDeleteAll, "deleted")
	},
}

var trashRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore every trashed task",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrashAction(cmd, taskUC.ActionRestoreAll, "restored")
	},
}

func init() {
	trashCmd.AddCommand(trashPurgeCmd)
	trashCmd.AddCommand(trashRestoreCmd)
}

func runTrashAction(cmd *cobra.Command, action, verb string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close(ctx)

	// No notifier: bulk trash actions never notify.
	uc := taskUC.New(e.stores.Tasks, e.stores.Users, nil, e.log)
	n, err := uc.DeleteRestoreTask(ctx, domain.Caller{IsAdmin: true}, "", action)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) %s\n", n, verb)
	return nil
}
