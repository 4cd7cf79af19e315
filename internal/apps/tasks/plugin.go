package tasks

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trovehq/trove/internal/config"
	"gorm.io/gorm"
)

type TasksPlugin struct{}

func New() *TasksPlugin {
	return &TasksPlugin{}
}

func (p *TasksPlugin) ID() string { return "tasks" }

func (p *TasksPlugin) Models() []interface{} {
	return []interface{}{&Task{}}
}

func (p *TasksPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	svc := NewTaskService(db)
	h := NewTaskHandler(svc)

	router.Get("/tasks", h.List)
	router.Post("/tasks", h.Create)
	router.Post("/tasks/sync", h.Sync)
	router.Get("/tasks/:id", h.Get)
	router.Put("/tasks/:id", h.Update)
	router.Delete("/tasks/:id", h.Delete)
}
