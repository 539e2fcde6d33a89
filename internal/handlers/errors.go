package handlers

import (
	"errors"
	"log/slog"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// renderError maps service errors onto the HTTP error taxonomy:
// field-keyed 400 bodies for validation failures, {"detail": ...} for
// everything else. Unexpected errors become an opaque 500.
func renderError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: "Invalid credentials"})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: "Token is invalid or expired"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.DetailResponse{Detail: "You do not have permission to perform this action."})
	case errors.Is(err, services.ErrIncidentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: "Incident not found"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: "User not found"})
	}

	slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: "Internal server error"})
}

func badRequestBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: "Invalid request body"})
}
