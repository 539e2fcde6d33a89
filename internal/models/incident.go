package models

import (
	"time"

	"github.com/google/uuid"
)

// Incident statuses. These form a closed value set, not an enforced
// transition graph: responders may set any value from any current
// state, including moving backwards or reopening after closed.
const (
	StatusNew          = "new"
	StatusEnroute      = "enroute"
	StatusArrived      = "arrived"
	StatusFighting     = "fighting"
	StatusExtinguished = "extinguished"
	StatusClosed       = "closed"
)

// ActiveStatuses are the in-progress response states counted as
// "active" on the dashboard.
var ActiveStatuses = []string{StatusEnroute, StatusArrived, StatusFighting}

// ResolvedStatuses are the terminal-ish states counted as "resolved"
// on the dashboard.
var ResolvedStatuses = []string{StatusExtinguished, StatusClosed}

// ValidStatus reports whether status is one of the recognized incident
// statuses.
func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusEnroute, StatusArrived, StatusFighting, StatusExtinguished, StatusClosed:
		return true
	}
	return false
}

// Incident is a fire incident report. Status is a denormalized copy of
// the latest StatusUpdate and is only written together with a new
// ledger entry in the same transaction.
type Incident struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID    *uuid.UUID     `gorm:"type:uuid;index" json:"reporter_id,omitempty"`
	ReporterName  string         `gorm:"not null;size:255" json:"reporter_name"`
	ReporterPhone string         `gorm:"size:20" json:"reporter_phone,omitempty"`
	Lat           float64        `gorm:"type:decimal(9,6);not null" json:"lat"`
	Lng           float64        `gorm:"type:decimal(9,6);not null" json:"lng"`
	Address       string         `gorm:"type:text;not null" json:"address"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Status        string         `gorm:"size:20;not null;default:'new';index" json:"status"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Reporter      *User          `gorm:"foreignKey:ReporterID" json:"-"`
	Photos        []IncidentPhoto `gorm:"foreignKey:IncidentID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	StatusUpdates []StatusUpdate  `gorm:"foreignKey:IncidentID;constraint:OnDelete:CASCADE" json:"status_updates,omitempty"`
}

// IsActive reports whether the incident still needs a response.
func (i *Incident) IsActive() bool {
	return i.Status != StatusExtinguished && i.Status != StatusClosed
}
