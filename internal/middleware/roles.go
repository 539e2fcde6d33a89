package middleware

import (
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ResponderRequired allows only fire team members and admins through.
// The role is verified against the user record, not just the token
// claim, so revoking a role takes effect on the next request.
func ResponderRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
				Detail: "Authentication credentials were not provided or are invalid.",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{
				Detail: "Authentication credentials were not provided or are invalid.",
			})
		}

		if !user.CanRespond() {
			return c.Status(fiber.StatusForbidden).JSON(dto.DetailResponse{
				Detail: "You do not have permission to perform this action.",
			})
		}

		return c.Next()
	}
}
