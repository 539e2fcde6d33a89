package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusUpdate is one entry in an incident's append-only status ledger.
// Rows are created exactly once per transition and never mutated; the
// newest entry's Status always matches the parent incident's Status.
type StatusUpdate struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	IncidentID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"incident_id"`
	Status      string     `gorm:"size:20;not null" json:"status"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"-"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	Timestamp   time.Time  `gorm:"not null;index" json:"timestamp"`
	UpdatedBy   *User      `gorm:"foreignKey:UpdatedByID" json:"-"`
}

func (StatusUpdate) TableName() string {
	return "status_updates"
}
