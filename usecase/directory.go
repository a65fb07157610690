package usecase

import (
	"context"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

// ResolveTeams replaces team ids and activity actors with user summaries
// using a single directory lookup. Ids the directory does not know keep an
// id-only summary.
func ResolveTeams(ctx context.Context, users repository.UserRepository, tasks []domain.Task) ([]domain.TaskView, error) {
	views := make([]domain.TaskView, 0, len(tasks))
	if len(tasks) == 0 {
		return views, nil
	}

	var ids []string
	for _, t := range tasks {
		ids = append(ids, t.Team...)
		for _, a := range t.Activities {
			ids = append(ids, a.By)
		}
	}
	ids = domain.UniqueMembers(ids)

	known := make(map[string]domain.UserSummary, len(ids))
	if len(ids) > 0 && users != nil {
		found, err := users.GetByIDs(ctx, ids)
		if err != nil {
			return nil, domain.StoreError("resolve users", err)
		}
		for i := range found {
			known[found[i].ID] = found[i].Summary()
		}
	}
	summary := func(id string) domain.UserSummary {
		if s, ok := known[id]; ok {
			return s
		}
		return domain.UserSummary{ID: id}
	}

	for _, t := range tasks {
		team := make([]domain.UserSummary, 0, len(t.Team))
		for _, id := range t.Team {
			team = append(team, summary(id))
		}
		activities := make([]domain.ActivityView, 0, len(t.Activities))
		for _, a := range t.Activities {
			activities = append(activities, domain.ActivityView{Activity: a, By: summary(a.By)})
		}
		views = append(views, domain.TaskView{Task: t, Team: team, Activities: activities})
	}
	return views, nil
}
