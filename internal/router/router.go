package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskboard/api/handler"
)

type Handlers struct {
	Profile   *apiHandler.ProfileHandler
	Task      *apiHandler.TaskHandler
	Dashboard *apiHandler.DashboardHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/tasks/dashboard", authMiddleware(handlers.Dashboard.Statistics))
	r.DELETE("/api/v1/tasks/trash", authMiddleware(handlers.Task.DeleteRestoreTask))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteRestoreTask))
	r.POST("/api/v1/tasks/{id}/duplicate", authMiddleware(handlers.Task.DuplicateTask))
	r.POST("/api/v1/tasks/{id}/activity", authMiddleware(handlers.Task.PostActivity))
	r.POST("/api/v1/tasks/{id}/subtasks", authMiddleware(handlers.Task.CreateSubTask))
	r.PUT("/api/v1/tasks/{id}/trash", authMiddleware(handlers.Task.TrashTask))

	return r
}
