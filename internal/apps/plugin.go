package apps

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trovehq/trove/internal/config"
	"gorm.io/gorm"
)

// Plugin defines the interface each content type implements.
type Plugin interface {
	// ID returns the unique content-type identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the content type's routes on the given
	// Fiber group. The group is already prefixed with /api and has JWT
	// middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
