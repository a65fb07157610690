package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// TaskFilter selects tasks. Trashed is an exact match unless IncludeTrashed
// is set, so the zero value only returns tasks that are not in the trash.
// Limit <= 0 means no limit.
type TaskFilter struct {
	IDs            []string
	Stage          domain.Stage
	Member         string
	Trashed        bool
	IncludeTrashed bool
	Limit          int
	Offset         int
}

// TaskPatch lists the fields UpdateMany may set. Nil fields are left untouched.
type TaskPatch struct {
	Trashed *bool
}

// TaskRepository is the task store. List returns tasks newest first by
// creation order, never by the task date.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	AppendActivity(ctx context.Context, id string, activity domain.Activity) error
	AppendSubTask(ctx context.Context, id string, subTask domain.SubTask) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter TaskFilter) (int64, error)
	UpdateMany(ctx context.Context, filter TaskFilter, patch TaskPatch) (int64, error)
}
