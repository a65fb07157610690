package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a gorm/SQLite-backed implementation of TaskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	rec, err := r.find(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	task := rec.toDomain()
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).Scopes(withFilter(filter)).Order("seq DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var records []taskRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(records))
	for i := range records {
		tasks = append(tasks, records[i].toDomain())
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	rec := newTaskRecord(task)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	task.CreatedAt = rec.CreatedAt
	task.UpdatedAt = rec.UpdatedAt
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := r.find(tx, task.ID)
		if err != nil {
			return err
		}
		rec.Title = task.Title
		rec.Date = task.Date
		rec.Deadline = task.Deadline
		rec.Priority = string(task.Priority)
		rec.Stage = string(task.Stage)
		rec.Team = nonNil(task.Team)
		rec.Assets = nonNil(task.Assets)
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		task.UpdatedAt = rec.UpdatedAt
		return nil
	})
}

func (r *taskRepository) AppendActivity(ctx context.Context, id string, activity domain.Activity) error {
	return r.mutate(ctx, id, func(rec *taskRecord) {
		rec.Activities = append(rec.Activities, activity)
	})
}

func (r *taskRepository) AppendSubTask(ctx context.Context, id string, subTask domain.SubTask) error {
	return r.mutate(ctx, id, func(rec *taskRecord) {
		rec.SubTasks = append(rec.SubTasks, subTask)
	})
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&taskRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) DeleteMany(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	res := r.db.WithContext(ctx).Scopes(withFilter(filter)).Delete(&taskRecord{})
	return res.RowsAffected, res.Error
}

func (r *taskRepository) UpdateMany(ctx context.Context, filter repository.TaskFilter, patch repository.TaskPatch) (int64, error) {
	if patch.Trashed == nil {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Scopes(withFilter(filter)).
		Updates(map[string]interface{}{
			"is_trashed": *patch.Trashed,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

// mutate runs a read-modify-write of one task inside a transaction.
func (r *taskRepository) mutate(ctx context.Context, id string, fn func(rec *taskRecord)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := r.find(tx, id)
		if err != nil {
			return err
		}
		fn(rec)
		return tx.Save(rec).Error
	})
}

func (r *taskRepository) find(db *gorm.DB, id string) (*taskRecord, error) {
	var rec taskRecord
	if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// withFilter always adds a where clause, so bulk updates and deletes are
// never rejected as global.
func withFilter(filter repository.TaskFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.IncludeTrashed {
			db = db.Where("1 = 1")
		} else {
			db = db.Where("is_trashed = ?", filter.Trashed)
		}
		if filter.Stage != "" {
			db = db.Where("stage = ?", string(filter.Stage))
		}
		if filter.Member != "" {
			db = db.Where("EXISTS (SELECT 1 FROM json_each(tasks.team) WHERE json_each.value = ?)", filter.Member)
		}
		if len(filter.IDs) > 0 {
			db = db.Where("id IN ?", filter.IDs)
		}
		return db
	}
}
