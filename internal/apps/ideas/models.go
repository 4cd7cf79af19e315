package ideas

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultCategory is applied when an idea is created without one.
const DefaultCategory = "general"

// Idea is a single owner-scoped idea with free-text category and tags.
type Idea struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID                   `gorm:"type:uuid;not null;index" json:"-"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Category    string                      `gorm:"size:100;index" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}
