package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	"github.com/fastygo/taskboard/repository"
	taskUC "github.com/fastygo/taskboard/usecase/task"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	if _, ok := h.caller(ctx); !ok {
		return
	}

	args := ctx.QueryArgs()
	stage := domain.Stage("")
	if raw := string(args.Peek("stage")); raw != "" {
		parsed, err := domain.ParseStage(raw)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), err.Error()))
			return
		}
		stage = parsed
	}
	trashed, _ := strconv.ParseBool(string(args.Peek("isTrashed")))

	limit := parseInt(string(args.Peek("limit")), defaultListLimit)
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	filter := repository.TaskFilter{
		Stage:   stage,
		Member:  string(args.Peek("member")),
		Trashed: trashed,
		Limit:   limit,
		Offset:  parseInt(string(args.Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks, "")
}

// @Summary Get task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	if _, ok := h.caller(ctx); !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, taskID(ctx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task, "")
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}
	var req transport.TaskRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, caller, taskInput(req))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created, "Task created successfully.")
}

// @Summary Duplicate task
// @Tags tasks
// @Router /api/v1/tasks/{id}/duplicate [post]
func (h *TaskHandler) DuplicateTask(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.DuplicateTask(stdCtx, caller, taskID(ctx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created, "Task duplicated successfully.")
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}
	var req transport.TaskRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, caller, taskID(ctx), taskInput(req))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated, "Task updated successfully.")
}

// @Summary Post activity
// @Tags tasks
// @Router /api/v1/tasks/{id}/activity [post]
func (h *TaskHandler) PostActivity(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}
	var req transport.ActivityRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activity, err := h.uc.PostActivity(stdCtx, caller, taskID(ctx), req.Type, req.Activity)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activity, "Activity posted successfully.")
}

// @Summary Create subtask
// @Tags tasks
// @Router /api/v1/tasks/{id}/subtasks [post]
func (h *TaskHandler) CreateSubTask(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}
	var req transport.SubTaskRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	subTask, err := h.uc.CreateSubTask(stdCtx, caller, taskID(ctx), req.Title, req.Tag, req.Date.Value())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, subTask, "SubTask added successfully.")
}

// @Summary Trash task
// @Tags tasks
// @Router /api/v1/tasks/{id}/trash [put]
func (h *TaskHandler) TrashTask(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.TrashTask(stdCtx, caller, taskID(ctx)); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil, "Task trashed successfully.")
}

// @Summary Delete or restore tasks
// @Tags tasks
// @Param actionType query string true "delete, deleteAll, restore or restoreAll"
// @Router /api/v1/tasks/{id} [delete]
// @Router /api/v1/tasks/trash [delete]
func (h *TaskHandler) DeleteRestoreTask(ctx *fasthttp.RequestCtx) {
	caller, ok := h.caller(ctx)
	if !ok {
		return
	}
	action := string(ctx.QueryArgs().Peek("actionType"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	affected, err := h.uc.DeleteRestoreTask(stdCtx, caller, taskID(ctx), action)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.TrashActionResult{Action: action, Affected: affected}, "Operation performed successfully.")
}

func taskInput(req transport.TaskRequest) taskUC.Input {
	return taskUC.Input{
		Title:    req.Title,
		Team:     req.Team,
		Stage:    req.Stage,
		Priority: req.Priority,
		Date:     req.Date.Value(),
		Deadline: req.Deadline.Ptr(),
		Assets:   req.Assets,
	}
}

func taskID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}
