package handlers

import (
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	incidentService *services.IncidentService
	authService     *services.AuthService
}

func NewDashboardHandler(incidentService *services.IncidentService, authService *services.AuthService) *DashboardHandler {
	return &DashboardHandler{incidentService: incidentService, authService: authService}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return renderError(c, services.ErrUserNotFound)
	}

	actor, err := h.authService.GetUser(userID)
	if err != nil {
		return renderError(c, err)
	}

	stats, err := h.incidentService.Stats(actor)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(stats)
}
