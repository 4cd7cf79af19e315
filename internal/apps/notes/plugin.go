package notes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trovehq/trove/internal/config"
	"gorm.io/gorm"
)

type NotesPlugin struct{}

func New() *NotesPlugin {
	return &NotesPlugin{}
}

func (p *NotesPlugin) ID() string { return "notes" }

func (p *NotesPlugin) Models() []interface{} {
	return []interface{}{&Note{}}
}

func (p *NotesPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	svc := NewNoteService(db)
	h := NewNoteHandler(svc)

	router.Get("/notes", h.List)
	router.Post("/notes", h.Create)
	router.Post("/notes/sync", h.Sync)
	router.Get("/notes/:id", h.Get)
	router.Put("/notes/:id", h.Update)
	router.Delete("/notes/:id", h.Delete)
}
