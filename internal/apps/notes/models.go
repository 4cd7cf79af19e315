package notes

import (
	"time"

	"github.com/google/uuid"
)

// DefaultColor is applied when a note is created without one.
const DefaultColor = "#ffd966"

// Note is a single owner-scoped note.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Color     string    `gorm:"size:20" json:"color"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
