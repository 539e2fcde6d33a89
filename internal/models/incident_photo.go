package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentPhoto is a photo attached to an incident. ImageURL is the
// opaque reference returned by the media storage backend.
type IncidentPhoto struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IncidentID uuid.UUID `gorm:"type:uuid;not null;index" json:"incident_id"`
	ImageURL   string    `gorm:"type:text;not null" json:"image"`
	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`
}

func (IncidentPhoto) TableName() string {
	return "incident_photos"
}
