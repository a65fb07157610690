package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/usecase"
)

// Actions accepted by DeleteRestoreTask.
const (
	ActionDelete     = "delete"
	ActionDeleteAll  = "deleteAll"
	ActionRestore    = "restore"
	ActionRestoreAll = "restoreAll"
)

const duplicateSuffix = " - Duplicate"

// Input carries the caller-editable fields of a task.
type Input struct {
	Title    string
	Team     []string
	Stage    string
	Priority string
	Date     time.Time
	Deadline *time.Time
	Assets   []string
}

type UseCase struct {
	tasks    repository.TaskRepository
	users    repository.UserRepository
	notifier usecase.NotificationSink
	actions  *usecase.Dispatcher
	logger   *zap.Logger
	now      func() time.Time
}

func New(tasks repository.TaskRepository, users repository.UserRepository, notifier usecase.NotificationSink, log *zap.Logger) *UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	uc := &UseCase{
		tasks:    tasks,
		users:    users,
		notifier: notifier,
		actions:  usecase.NewDispatcher(),
		logger:   log,
		now:      time.Now,
	}
	uc.registerActions()
	return uc
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.TaskView, error) {
	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, domain.StoreError("list tasks", err)
	}
	return usecase.ResolveTeams(ctx, uc.users, tasks)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.TaskView, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreError("get task", err)
	}
	views, err := usecase.ResolveTeams(ctx, uc.users, []domain.Task{*task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateTask stores a new task with its initial assignment activity and
// notifies the team.
func (uc *UseCase) CreateTask(ctx context.Context, caller domain.Caller, in Input) (*domain.Task, error) {
	task, err := uc.fromInput(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if task.Date.IsZero() {
		task.Date = now
	}

	text := assignmentText(len(task.Team), task.Priority, task.Date)
	task.Activities = []domain.Activity{{
		Type:     domain.ActivityAssigned,
		Activity: text,
		Date:     now,
		By:       caller.UserID,
	}}
	task.SubTasks = []domain.SubTask{}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, domain.StoreError("create task", err)
	}

	uc.log(ctx).Info("task created", zap.String("task_id", created.ID), zap.String("user_id", caller.UserID))
	uc.notify(ctx, created.Team, text, created.ID)
	return created, nil
}

// DuplicateTask copies a task's team, subtasks, assets, priority, stage, date
// and history into a new task. The source is left untouched.
func (uc *UseCase) DuplicateTask(ctx context.Context, caller domain.Caller, sourceID string) (*domain.Task, error) {
	source, err := uc.tasks.GetByID(ctx, sourceID)
	if err != nil {
		return nil, domain.StoreError("get task", err)
	}

	snapshot := source.Clone()
	task := &domain.Task{
		Title:      snapshot.Title + duplicateSuffix,
		Team:       snapshot.Team,
		SubTasks:   snapshot.SubTasks,
		Assets:     snapshot.Assets,
		Priority:   snapshot.Priority,
		Stage:      snapshot.Stage,
		Date:       snapshot.Date,
		Activities: snapshot.Activities,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, domain.StoreError("duplicate task", err)
	}

	uc.log(ctx).Info("task duplicated",
		zap.String("source_id", source.ID),
		zap.String("task_id", created.ID),
		zap.String("user_id", caller.UserID))
	uc.notify(ctx, created.Team, duplicateText(len(source.Team), source.Priority, source.Date), created.ID)
	return created, nil
}

// PostActivity appends one entry to the task timeline.
func (uc *UseCase) PostActivity(ctx context.Context, caller domain.Caller, taskID, activityType, text string) (*domain.Activity, error) {
	kind, err := domain.ParseActivityType(activityType)
	if err != nil {
		return nil, err
	}
	activity := domain.Activity{
		Type:     kind,
		Activity: text,
		Date:     uc.now(),
		By:       caller.UserID,
	}
	if err := uc.tasks.AppendActivity(ctx, taskID, activity); err != nil {
		return nil, domain.StoreError("post activity", err)
	}
	return &activity, nil
}

// CreateSubTask appends a checklist item. A zero date defaults to now.
func (uc *UseCase) CreateSubTask(ctx context.Context, caller domain.Caller, taskID, title, tag string, date time.Time) (*domain.SubTask, error) {
	if date.IsZero() {
		date = uc.now()
	}
	subTask := domain.SubTask{Title: title, Tag: tag, Date: date}
	if err := uc.tasks.AppendSubTask(ctx, taskID, subTask); err != nil {
		return nil, domain.StoreError("create subtask", err)
	}
	uc.log(ctx).Debug("subtask added", zap.String("task_id", taskID), zap.String("user_id", caller.UserID))
	return &subTask, nil
}

// UpdateTask overwrites every editable field. Members missing from the new
// team are dropped without a timeline entry. A zero date keeps the stored one.
func (uc *UseCase) UpdateTask(ctx context.Context, caller domain.Caller, id string, in Input) (*domain.Task, error) {
	next, err := uc.fromInput(in)
	if err != nil {
		return nil, err
	}

	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreError("get task", err)
	}

	task.Title = next.Title
	if !next.Date.IsZero() {
		task.Date = next.Date
	}
	task.Deadline = next.Deadline
	task.Team = next.Team
	task.Stage = next.Stage
	task.Priority = next.Priority
	task.Assets = next.Assets

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, domain.StoreError("update task", err)
	}
	uc.log(ctx).Info("task updated", zap.String("task_id", id), zap.String("user_id", caller.UserID))
	return task, nil
}

// TrashTask hides a task from listings. Trashing twice is a no-op.
func (uc *UseCase) TrashTask(ctx context.Context, caller domain.Caller, id string) error {
	if err := uc.setTrashed(ctx, id, true); err != nil {
		return err
	}
	uc.log(ctx).Info("task trashed", zap.String("task_id", id), zap.String("user_id", caller.UserID))
	return nil
}

// DeleteRestoreTask runs one of the trash actions and returns the number of
// affected tasks. Unknown actions fail with domain.ErrInvalidAction.
func (uc *UseCase) DeleteRestoreTask(ctx context.Context, caller domain.Caller, id, action string) (int64, error) {
	result, err := uc.actions.ExecuteCommand(ctx, action, id)
	if err != nil {
		if errors.Is(err, usecase.ErrCommandNotRegistered) {
			return 0, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidAction.Message, err)
		}
		return 0, err
	}
	affected, _ := result.(int64)
	uc.log(ctx).Info("trash action applied",
		zap.String("action", action),
		zap.String("task_id", id),
		zap.Int64("affected", affected),
		zap.String("user_id", caller.UserID))
	return affected, nil
}

func (uc *UseCase) registerActions() {
	trashed := repository.TaskFilter{Trashed: true}

	uc.actions.RegisterCommand(ActionDelete, func(ctx context.Context, payload interface{}) (interface{}, error) {
		id, err := requireID(payload)
		if err != nil {
			return nil, err
		}
		if err := uc.tasks.Delete(ctx, id); err != nil {
			return nil, domain.StoreError("delete task", err)
		}
		return int64(1), nil
	})
	uc.actions.RegisterCommand(ActionDeleteAll, func(ctx context.Context, _ interface{}) (interface{}, error) {
		n, err := uc.tasks.DeleteMany(ctx, trashed)
		if err != nil {
			return nil, domain.StoreError("delete trashed tasks", err)
		}
		return n, nil
	})
	uc.actions.RegisterCommand(ActionRestore, func(ctx context.Context, payload interface{}) (interface{}, error) {
		id, err := requireID(payload)
		if err != nil {
			return nil, err
		}
		if err := uc.setTrashed(ctx, id, false); err != nil {
			return nil, err
		}
		return int64(1), nil
	})
	uc.actions.RegisterCommand(ActionRestoreAll, func(ctx context.Context, _ interface{}) (interface{}, error) {
		restored := false
		n, err := uc.tasks.UpdateMany(ctx, trashed, repository.TaskPatch{Trashed: &restored})
		if err != nil {
			return nil, domain.StoreError("restore trashed tasks", err)
		}
		return n, nil
	})
}

func (uc *UseCase) setTrashed(ctx context.Context, id string, value bool) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "task id is required")
	}
	n, err := uc.tasks.UpdateMany(ctx,
		repository.TaskFilter{IDs: []string{id}, IncludeTrashed: true},
		repository.TaskPatch{Trashed: &value},
	)
	if err != nil {
		return domain.StoreError("set trash flag", err)
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (uc *UseCase) fromInput(in Input) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	stage, err := domain.ParseStage(in.Stage)
	if err != nil {
		return nil, err
	}
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	assets := in.Assets
	if assets == nil {
		assets = []string{}
	}
	return &domain.Task{
		Title:    title,
		Team:     domain.UniqueMembers(in.Team),
		Stage:    stage,
		Priority: priority,
		Date:     in.Date,
		Deadline: in.Deadline,
		Assets:   assets,
	}, nil
}

// notify hands the notification to the sink; delivery problems never reach the caller.
func (uc *UseCase) notify(ctx context.Context, team []string, text, taskID string) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.Emit(ctx, domain.Notification{
		Team:      append([]string(nil), team...),
		Text:      text,
		TaskID:    taskID,
		CreatedAt: uc.now(),
	})
}

func (uc *UseCase) log(ctx context.Context) *zap.Logger {
	return logger.WithRequestID(ctx, uc.logger)
}

func requireID(payload interface{}) (string, error) {
	id, _ := payload.(string)
	if strings.TrimSpace(id) == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "task id is required")
	}
	return id, nil
}
