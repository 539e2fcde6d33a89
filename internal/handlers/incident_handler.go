package handlers

import (
	"mime/multipart"
	"strconv"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IncidentHandler struct {
	incidentService *services.IncidentService
	authService     *services.AuthService
}

func NewIncidentHandler(incidentService *services.IncidentService, authService *services.AuthService) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService, authService: authService}
}

// Create accepts both JSON bodies and multipart forms; photos only
// arrive via the latter. Anonymous submissions are allowed.
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	var photos []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		photos = form.File["photos"]
	}

	actor := h.optionalActor(c)

	resp, err := h.incidentService.Create(c.Context(), actor, &req, photos)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *IncidentHandler) List(c *fiber.Ctx) error {
	actor, err := h.requireActor(c)
	if err != nil {
		return renderError(c, err)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	params := services.ListParams{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page,
	}

	resp, err := h.incidentService.List(actor, params)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(resp)
}

func (h *IncidentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return renderError(c, services.ErrIncidentNotFound)
	}

	resp, err := h.incidentService.GetDetail(id)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(resp)
}

func (h *IncidentHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := h.requireActor(c)
	if err != nil {
		return renderError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return renderError(c, services.ErrIncidentNotFound)
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.incidentService.UpdateStatus(actor, id, &req)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(resp)
}

func (h *IncidentHandler) ListUpdates(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return renderError(c, services.ErrIncidentNotFound)
	}

	resp, err := h.incidentService.ListUpdates(id)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(resp)
}

func (h *IncidentHandler) requireActor(c *fiber.Ctx) (*models.User, error) {
	userID, err := middleware.UserID(c)
	if err != nil {
		return nil, services.ErrUserNotFound
	}
	return h.authService.GetUser(userID)
}

// optionalActor resolves the caller when a token was presented,
// otherwise returns nil for an anonymous report.
func (h *IncidentHandler) optionalActor(c *fiber.Ctx) *models.User {
	userID, err := middleware.UserID(c)
	if err != nil {
		return nil
	}
	user, err := h.authService.GetUser(userID)
	if err != nil {
		return nil
	}
	return user
}
