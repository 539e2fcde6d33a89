package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/media"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const pageSize = 20

// initialStatusNotes is written to the synthetic first ledger entry
// created with every incident.
const initialStatusNotes = "Incident reported"

// orderings whitelists the accepted ?ordering= values.
var orderings = map[string]string{
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
	"updated_at":  "updated_at ASC",
	"-updated_at": "updated_at DESC",
	"status":      "status ASC",
	"-status":     "status DESC",
}

type IncidentService struct {
	db    *gorm.DB
	media media.Uploader
}

func NewIncidentService(db *gorm.DB, uploader media.Uploader) *IncidentService {
	return &IncidentService{db: db, media: uploader}
}

// Create submits a new incident report. actor may be nil for anonymous
// reports. The incident, its synthetic first status update and any
// photo rows are written in one transaction; photo bytes are uploaded
// to media storage before the transaction opens.
func (s *IncidentService) Create(ctx context.Context, actor *models.User, req *dto.CreateIncidentRequest, photos []*multipart.FileHeader) (*dto.IncidentDetailResponse, error) {
	if verr := validateIncidentInput(req); verr != nil {
		return nil, verr
	}

	photoURLs, err := s.uploadPhotos(ctx, photos)
	if err != nil {
		return nil, err
	}

	reporterName := strings.TrimSpace(req.ReporterName)
	if reporterName == "" {
		if actor != nil {
			reporterName = actor.Name
		} else {
			reporterName = "Anonymous"
		}
	}
	reporterPhone := req.ReporterPhone
	if reporterPhone == "" && actor != nil {
		reporterPhone = actor.Phone
	}

	now := time.Now().UTC()
	incident := models.Incident{
		ID:            uuid.New(),
		ReporterName:  reporterName,
		ReporterPhone: reporterPhone,
		Lat:           req.Lat,
		Lng:           req.Lng,
		Address:       req.Address,
		Description:   req.Description,
		Status:        models.StatusNew,
	}

	var reporterID *uuid.UUID
	if actor != nil {
		id := actor.ID
		reporterID = &id
	}
	incident.ReporterID = reporterID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&incident).Error; err != nil {
			return fmt.Errorf("failed to create incident: %w", err)
		}

		first := models.StatusUpdate{
			ID:          uuid.New(),
			IncidentID:  incident.ID,
			Status:      models.StatusNew,
			UpdatedByID: reporterID,
			Notes:       initialStatusNotes,
			Timestamp:   now,
		}
		if err := tx.Create(&first).Error; err != nil {
			return fmt.Errorf("failed to create initial status update: %w", err)
		}

		for _, url := range photoURLs {
			photo := models.IncidentPhoto{
				ID:         uuid.New(),
				IncidentID: incident.ID,
				ImageURL:   url,
				UploadedAt: now,
			}
			if err := tx.Create(&photo).Error; err != nil {
				return fmt.Errorf("failed to attach photo: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetDetail(incident.ID)
}

func (s *IncidentService) uploadPhotos(ctx context.Context, photos []*multipart.FileHeader) ([]string, error) {
	if len(photos) == 0 {
		return nil, nil
	}
	if s.media == nil {
		verr := newValidationError()
		verr.add("photos", "Photo uploads are not available.")
		return nil, verr
	}

	urls := make([]string, 0, len(photos))
	for _, header := range photos {
		file, err := header.Open()
		if err != nil {
			verr := newValidationError()
			verr.add("photos", fmt.Sprintf("Could not read uploaded file %q.", header.Filename))
			return nil, verr
		}
		url, err := s.media.Store(ctx, file)
		file.Close()
		if err != nil {
			verr := newValidationError()
			verr.add("photos", fmt.Sprintf("Upload failed for %q.", header.Filename))
			return nil, verr
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func validateIncidentInput(req *dto.CreateIncidentRequest) *ValidationError {
	verr := newValidationError()

	if req.Lat < -90 || req.Lat > 90 {
		verr.add("lat", "Latitude must be between -90 and 90")
	}
	if req.Lng < -180 || req.Lng > 180 {
		verr.add("lng", "Longitude must be between -180 and 180")
	}
	if strings.TrimSpace(req.Address) == "" {
		verr.add("address", "This field is required.")
	}
	if strings.TrimSpace(req.Description) == "" {
		verr.add("description", "This field is required.")
	}

	if verr.empty() {
		return nil
	}
	return verr
}

// ListParams are the query filters accepted by List.
type ListParams struct {
	Status   string
	Search   string
	Ordering string
	Page     int
}

// List returns the page of incidents visible to actor. Fire team and
// admin accounts see everything; public accounts see only their own
// reports.
func (s *IncidentService) List(actor *models.User, params ListParams) (*dto.IncidentPageResponse, error) {
	query := s.db.Model(&models.Incident{})

	if !actor.CanRespond() {
		query = query.Where("reporter_id = ?", actor.ID)
	}

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"(LOWER(address) LIKE ? OR LOWER(description) LIKE ? OR LOWER(reporter_name) LIKE ?)",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	order, ok := orderings[params.Ordering]
	if !ok {
		order = orderings["-created_at"]
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var incidents []models.Incident
	if err := query.Order(order).Limit(pageSize).Offset(offset).Find(&incidents).Error; err != nil {
		return nil, err
	}

	resp := &dto.IncidentPageResponse{
		Count:   total,
		Results: make([]dto.IncidentListItem, len(incidents)),
	}
	for i, inc := range incidents {
		resp.Results[i] = mapIncidentToListItem(&inc)
	}
	if int64(page*pageSize) < total {
		next := page + 1
		resp.Next = &next
	}
	if page > 1 {
		prev := page - 1
		resp.Previous = &prev
	}

	return resp, nil
}

// GetDetail fetches one incident with its photos and full status
// history, newest first. Unlike List, detail is not owner-scoped: any
// authenticated caller may fetch any incident by id.
func (s *IncidentService) GetDetail(id uuid.UUID) (*dto.IncidentDetailResponse, error) {
	var incident models.Incident
	err := s.db.
		Preload("Reporter").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at DESC")
		}).
		Preload("StatusUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC")
		}).
		Preload("StatusUpdates.UpdatedBy").
		First(&incident, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}

	return mapIncidentToDetail(&incident), nil
}

// ListUpdates returns the status ledger for an incident, newest first.
func (s *IncidentService) ListUpdates(id uuid.UUID) ([]dto.StatusUpdateResponse, error) {
	var updates []models.StatusUpdate
	err := s.db.
		Preload("UpdatedBy").
		Where("incident_id = ?", id).
		Order("timestamp DESC").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}

	resp := make([]dto.StatusUpdateResponse, len(updates))
	for i, u := range updates {
		resp[i] = mapStatusUpdate(&u)
	}
	return resp, nil
}

// UpdateStatus applies a status transition. Any of the recognized
// status values is accepted from any current state; there is no
// transition graph and closed incidents can be reopened. The ledger
// entry and the denormalized status column are written in one
// transaction so readers never see one without the other.
func (s *IncidentService) UpdateStatus(actor *models.User, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.IncidentDetailResponse, error) {
	if actor == nil || !actor.CanRespond() {
		return nil, ErrForbidden
	}

	if !models.ValidStatus(req.Status) {
		verr := newValidationError()
		verr.add("status", fmt.Sprintf("%q is not a valid choice.", req.Status))
		return nil, verr
	}

	var incident models.Incident
	if err := s.db.First(&incident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	actorID := actor.ID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Incident{}).
			Where("id = ?", incident.ID).
			Updates(map[string]interface{}{
				"status":     req.Status,
				"updated_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update incident status: %w", result.Error)
		}

		entry := models.StatusUpdate{
			ID:          uuid.New(),
			IncidentID:  incident.ID,
			Status:      req.Status,
			UpdatedByID: &actorID,
			Notes:       req.Notes,
			Timestamp:   now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append status update: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetDetail(incident.ID)
}

// Stats computes dashboard counts from the live status distribution.
func (s *IncidentService) Stats(actor *models.User) (*dto.StatsResponse, error) {
	if actor == nil || !actor.CanRespond() {
		return nil, ErrForbidden
	}

	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.Model(&models.Incident{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return buildStats(counts), nil
}

// buildStats partitions per-status counts into the dashboard buckets.
// new + active + resolved always equals total.
func buildStats(counts map[string]int64) *dto.StatsResponse {
	stats := &dto.StatsResponse{New: counts[models.StatusNew]}
	for _, status := range models.ActiveStatuses {
		stats.Active += counts[status]
	}
	for _, status := range models.ResolvedStatuses {
		stats.Resolved += counts[status]
	}
	for _, count := range counts {
		stats.Total += count
	}
	return stats
}

func mapIncidentToListItem(inc *models.Incident) dto.IncidentListItem {
	return dto.IncidentListItem{
		ID:            inc.ID,
		ReporterName:  inc.ReporterName,
		ReporterPhone: inc.ReporterPhone,
		Lat:           inc.Lat,
		Lng:           inc.Lng,
		Address:       inc.Address,
		Description:   inc.Description,
		Status:        inc.Status,
		CreatedAt:     inc.CreatedAt,
		UpdatedAt:     inc.UpdatedAt,
	}
}

func mapIncidentToDetail(inc *models.Incident) *dto.IncidentDetailResponse {
	detail := &dto.IncidentDetailResponse{
		ID:            inc.ID,
		ReporterName:  inc.ReporterName,
		ReporterPhone: inc.ReporterPhone,
		Lat:           inc.Lat,
		Lng:           inc.Lng,
		Address:       inc.Address,
		Description:   inc.Description,
		Status:        inc.Status,
		Photos:        make([]dto.PhotoResponse, len(inc.Photos)),
		StatusUpdates: make([]dto.StatusUpdateResponse, len(inc.StatusUpdates)),
		CreatedAt:     inc.CreatedAt,
		UpdatedAt:     inc.UpdatedAt,
	}

	if inc.Reporter != nil {
		reporter := MapUserToResponse(inc.Reporter)
		detail.Reporter = &reporter
	}
	for i, p := range inc.Photos {
		detail.Photos[i] = dto.PhotoResponse{
			ID:         p.ID,
			Image:      p.ImageURL,
			UploadedAt: p.UploadedAt,
		}
	}
	for i, u := range inc.StatusUpdates {
		detail.StatusUpdates[i] = mapStatusUpdate(&u)
	}

	return detail
}

func mapStatusUpdate(u *models.StatusUpdate) dto.StatusUpdateResponse {
	resp := dto.StatusUpdateResponse{
		ID:        u.ID,
		Status:    u.Status,
		Notes:     u.Notes,
		Timestamp: u.Timestamp,
	}
	if u.UpdatedBy != nil {
		updatedBy := MapUserToResponse(u.UpdatedBy)
		resp.UpdatedBy = &updatedBy
	}
	return resp
}
