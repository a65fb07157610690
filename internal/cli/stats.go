package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/domain"
	dashboardUC "github.com/fastygo/taskboard/usecase/dashboard"
)

var (
	statsUser  string
	statsAdmin bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard statistics as JSON",
	Long: `Print the dashboard report for one caller.

Examples:
  taskctl stats --admin
  taskctl stats --user 6561f0c2`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsUser, "user", "", "compute the report as this user")
	statsCmd.Flags().BoolVar(&statsAdmin, "admin", false, "compute the report as an admin")
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsUser == "" && !statsAdmin {
		return fmt.Errorf("either --user or --admin is required")
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.close(ctx)

	uc := dashboardUC.New(e.stores.Tasks, e.stores.Users, dashboardUC.Config{
		RecentTasks: e.cfg.Dashboard.RecentTasks,
		RecentUsers: e.cfg.Dashboard.RecentUsers,
	}, e.log)

	stats, err := uc.Statistics(ctx, domain.Caller{UserID: statsUser, IsAdmin: statsAdmin})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
