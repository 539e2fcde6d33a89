package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateIncidentRequest struct {
	Lat           float64 `json:"lat" form:"lat"`
	Lng           float64 `json:"lng" form:"lng"`
	Address       string  `json:"address" form:"address"`
	Description   string  `json:"description" form:"description"`
	ReporterName  string  `json:"reporter_name" form:"reporter_name"`
	ReporterPhone string  `json:"reporter_phone" form:"reporter_phone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type PhotoResponse struct {
	ID         uuid.UUID `json:"id"`
	Image      string    `json:"image"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type StatusUpdateResponse struct {
	ID        uuid.UUID     `json:"id"`
	Status    string        `json:"status"`
	UpdatedBy *UserResponse `json:"updated_by"`
	Notes     string        `json:"notes,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// IncidentListItem is the flat shape used by the list endpoint. Nested
// photos and history are only loaded for the detail view.
type IncidentListItem struct {
	ID            uuid.UUID `json:"id"`
	ReporterName  string    `json:"reporter_name"`
	ReporterPhone string    `json:"reporter_phone,omitempty"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	Address       string    `json:"address"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type IncidentDetailResponse struct {
	ID            uuid.UUID              `json:"id"`
	Reporter      *UserResponse          `json:"reporter"`
	ReporterName  string                 `json:"reporter_name"`
	ReporterPhone string                 `json:"reporter_phone,omitempty"`
	Lat           float64                `json:"lat"`
	Lng           float64                `json:"lng"`
	Address       string                 `json:"address"`
	Description   string                 `json:"description"`
	Status        string                 `json:"status"`
	Photos        []PhotoResponse        `json:"photos"`
	StatusUpdates []StatusUpdateResponse `json:"status_updates"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type IncidentPageResponse struct {
	Count    int64              `json:"count"`
	Next     *int               `json:"next"`
	Previous *int               `json:"previous"`
	Results  []IncidentListItem `json:"results"`
}

type StatsResponse struct {
	New      int64 `json:"new"`
	Active   int64 `json:"active"`
	Resolved int64 `json:"resolved"`
	Total    int64 `json:"total"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
