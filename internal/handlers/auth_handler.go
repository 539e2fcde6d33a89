package handlers

import (
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	pair, err := h.authService.Refresh(&req)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(dto.TokenPair{Access: pair.Access, Refresh: pair.Refresh})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	if req.Refresh == "" {
		verr := map[string][]string{"refresh": {"This field is required."}}
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	}

	if err := h.authService.Logout(&req); err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(services.MapUserToResponse(user))
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return renderError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	resp, err := h.authService.UpdateProfile(user, &req)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := middleware.UserID(c)
	if err != nil {
		return nil, services.ErrUserNotFound
	}
	return h.authService.GetUser(userID)
}
