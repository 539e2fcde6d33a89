package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Fire team members and admins respond to incidents,
// public users can only report them.
const (
	RolePublic   = "public"
	RoleFireTeam = "fire_team"
	RoleAdmin    = "admin"
)

// User is an account that can report incidents or, for fire team
// members and admins, respond to them. BadgeNumber and FireStation
// are set only when Role is fire_team.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Phone       string         `gorm:"size:20" json:"phone,omitempty"`
	Role        string         `gorm:"size:20;not null;default:'public'" json:"role"`
	BadgeNumber *string        `gorm:"size:50" json:"badge_number,omitempty"`
	FireStation *string        `gorm:"size:255" json:"fire_station,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsFireTeam reports whether the user is a fire team member.
func (u *User) IsFireTeam() bool {
	return u.Role == RoleFireTeam
}

// IsAdmin reports whether the user is an administrator.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanRespond reports whether the user may update incident status and
// view the dashboard.
func (u *User) CanRespond() bool {
	return u.IsFireTeam() || u.IsAdmin()
}

// ValidRole reports whether role is one of the recognized account roles.
func ValidRole(role string) bool {
	switch role {
	case RolePublic, RoleFireTeam, RoleAdmin:
		return true
	}
	return false
}
