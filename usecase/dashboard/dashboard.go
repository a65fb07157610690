package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/usecase"
)

const defaultRecent = 10

// Config bounds the "recent" sections of the report.
type Config struct {
	RecentTasks int
	RecentUsers int
}

// UseCase aggregates dashboard statistics. It only reads from the stores and
// holds no mutable state, so one instance serves concurrent requests.
type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	cfg    Config
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, users repository.UserRepository, cfg Config, log *zap.Logger) *UseCase {
	if cfg.RecentTasks <= 0 {
		cfg.RecentTasks = defaultRecent
	}
	if cfg.RecentUsers <= 0 {
		cfg.RecentUsers = defaultRecent
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &UseCase{tasks: tasks, users: users, cfg: cfg, logger: log}
}

// Statistics summarizes the tasks visible to the caller: every live task for
// admins, otherwise only the live tasks the caller is a team member of.
func (uc *UseCase) Statistics(ctx context.Context, caller domain.Caller) (*domain.Statistics, error) {
	filter := repository.TaskFilter{}
	if !caller.IsAdmin {
		if caller.UserID == "" {
			return nil, domain.ErrUnauthorized
		}
		filter.Member = caller.UserID
	}

	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, domain.StoreError("list tasks", err)
	}

	stats := &domain.Statistics{
		TotalTasks: len(tasks),
		Tasks:      countByStage(tasks),
		GraphData:  countByPriority(tasks),
		Users:      []domain.UserSummary{},
	}

	recent := tasks
	if len(recent) > uc.cfg.RecentTasks {
		recent = recent[:uc.cfg.RecentTasks]
	}
	if stats.Last10Task, err = usecase.ResolveTeams(ctx, uc.users, recent); err != nil {
		return nil, err
	}

	if caller.IsAdmin {
		users, err := uc.users.ListRecentActive(ctx, uc.cfg.RecentUsers)
		if err != nil {
			return nil, domain.StoreError("list users", err)
		}
		for i := range users {
			stats.Users = append(stats.Users, users[i].Summary())
		}
	}

	logger.WithRequestID(ctx, uc.logger).Debug("dashboard computed",
		zap.String("user_id", caller.UserID),
		zap.Bool("admin", caller.IsAdmin),
		zap.Int("total", stats.TotalTasks))
	return stats, nil
}

func countByStage(tasks []domain.Task) map[domain.Stage]int {
	counts := make(map[domain.Stage]int)
	for i := range tasks {
		counts[tasks[i].Stage]++
	}
	return counts
}

// countByPriority lists only priorities that occur, in canonical order.
func countByPriority(tasks []domain.Task) []domain.PriorityStat {
	counts := make(map[domain.Priority]int)
	for i := range tasks {
		counts[tasks[i].Priority]++
	}

	stats := make([]domain.PriorityStat, 0, len(counts))
	for _, p := range domain.Priorities {
		if n, ok := counts[p]; ok {
			stats = append(stats, domain.PriorityStat{Name: p, Total: n})
			delete(counts, p)
		}
	}
	for p, n := range counts {
		stats = append(stats, domain.PriorityStat{Name: p, Total: n})
	}
	return stats
}
