package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

const taskColumns = `id, title, date, deadline, priority, stage, team, assets, sub_tasks, activities, is_trashed, created_at, updated_at`

// Filter placeholders shared by List, DeleteMany and UpdateMany: $1..$5.
const taskFilterClause = `
	($1::boolean OR is_trashed = $2::boolean)
	AND ($3::text = '' OR stage = $3::text)
	AND ($4::text = '' OR $4::text = ANY(team))
	AND (cardinality($5::text[]) = 0 OR id = ANY($5::text[]))
`

var (
	listTasksQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE ` + taskFilterClause + `
	ORDER BY seq DESC
	LIMIT $6 OFFSET $7
	`
	deleteTasksQuery = `DELETE FROM tasks WHERE ` + taskFilterClause
	trashTasksQuery  = `UPDATE tasks SET is_trashed = $6, updated_at = NOW() WHERE ` + taskFilterClause
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, listTasksQuery, listArgs(filter)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, title, date, deadline, priority, stage, team, assets, sub_tasks, activities, is_trashed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at
	`

	subTasks, err := marshalList(task.SubTasks)
	if err != nil {
		return nil, err
	}
	activities, err := marshalList(task.Activities)
	if err != nil {
		return nil, err
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Date,
		task.Deadline,
		string(task.Priority),
		string(task.Stage),
		textArray(task.Team),
		textArray(task.Assets),
		subTasks,
		activities,
		task.IsTrashed,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		date = $3,
		deadline = $4,
		priority = $5,
		stage = $6,
		team = $7,
		assets = $8,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Date,
		task.Deadline,
		string(task.Priority),
		string(task.Stage),
		textArray(task.Team),
		textArray(task.Assets),
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) AppendActivity(ctx context.Context, id string, activity domain.Activity) error {
	return r.appendJSON(ctx, "activities", id, activity)
}

func (r *taskRepository) AppendSubTask(ctx context.Context, id string, subTask domain.SubTask) error {
	return r.appendJSON(ctx, "sub_tasks", id, subTask)
}

// appendJSON appends one element to a JSONB array column in a single statement.
func (r *taskRepository) appendJSON(ctx context.Context, column, id string, value interface{}) error {
	payload, err := json.Marshal([]interface{}{value})
	if err != nil {
		return err
	}
	query := `UPDATE tasks SET ` + column + ` = ` + column + ` || $2::jsonb, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, payload)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) DeleteMany(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteTasksQuery, filterArgs(filter)...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *taskRepository) UpdateMany(ctx context.Context, filter repository.TaskFilter, patch repository.TaskPatch) (int64, error) {
	if patch.Trashed == nil {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, trashTasksQuery, updateManyArgs(filter, patch)...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// filterArgs binds $1..$5 of taskFilterClause.
func filterArgs(filter repository.TaskFilter) []interface{} {
	return []interface{}{
		filter.IncludeTrashed,
		filter.Trashed,
		string(filter.Stage),
		filter.Member,
		textArray(filter.IDs),
	}
}

// listArgs adds the page bounds as $6 (limit) and $7 (offset).
func listArgs(filter repository.TaskFilter) []interface{} {
	return append(filterArgs(filter), limitArg(filter.Limit), offsetArg(filter.Offset))
}

// updateManyArgs adds the new trash flag as $6. The patch must carry one.
func updateManyArgs(filter repository.TaskFilter, patch repository.TaskPatch) []interface{} {
	return append(filterArgs(filter), *patch.Trashed)
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		priority   string
		stage      string
		subTasks   []byte
		activities []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Date,
		&task.Deadline,
		&priority,
		&stage,
		&task.Team,
		&task.Assets,
		&subTasks,
		&activities,
		&task.IsTrashed,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	task.Stage = domain.Stage(stage)
	if len(subTasks) > 0 {
		if err := json.Unmarshal(subTasks, &task.SubTasks); err != nil {
			return nil, err
		}
	}
	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &task.Activities); err != nil {
			return nil, err
		}
	}

	return &task, nil
}
