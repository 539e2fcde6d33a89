package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Role            string `json:"role"`
	BadgeNumber     string `json:"badge_number"`
	FireStation     string `json:"fire_station"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	BadgeNumber *string   `json:"badge_number,omitempty"`
	FireStation *string   `json:"fire_station,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// DetailResponse is the body for non-validation errors (401/403/404/500).
type DetailResponse struct {
	Detail string `json:"detail"`
}
