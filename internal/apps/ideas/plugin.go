package ideas

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trovehq/trove/internal/config"
	"gorm.io/gorm"
)

type IdeasPlugin struct{}

func New() *IdeasPlugin {
	return &IdeasPlugin{}
}

func (p *IdeasPlugin) ID() string { return "ideas" }

func (p *IdeasPlugin) Models() []interface{} {
	return []interface{}{&Idea{}}
}

func (p *IdeasPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	svc := NewIdeaService(db)
	h := NewIdeaHandler(svc)

	router.Get("/ideas", h.List)
	router.Get("/ideas/search", h.Search)
	router.Post("/ideas", h.Create)
	router.Post("/ideas/sync", h.Sync)
	router.Get("/ideas/:id", h.Get)
	router.Put("/ideas/:id", h.Update)
	router.Delete("/ideas/:id", h.Delete)
}
