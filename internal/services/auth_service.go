package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/firewatchhq/firewatch-backend/internal/config"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if verr := s.validateRegistration(req); verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RolePublic
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hash),
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     role,
	}

	// Badge and station only exist for fire team members.
	if role == models.RoleFireTeam {
		if req.BadgeNumber != "" {
			user.BadgeNumber = &req.BadgeNumber
		}
		if req.FireStation != "" {
			user.FireStation = &req.FireStation
		}
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.buildAuthResponse(&user)
}

func (s *AuthService) validateRegistration(req *dto.RegisterRequest) *ValidationError {
	verr := newValidationError()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		verr.add("email", "This field is required.")
	} else if !strings.Contains(email, "@") {
		verr.add("email", "Enter a valid email address.")
	} else {
		var existing models.User
		if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
			verr.add("email", "user with this email already exists.")
		}
	}

	if strings.TrimSpace(req.Name) == "" {
		verr.add("name", "This field is required.")
	}

	if len(req.Password) < 8 {
		verr.add("password", "Password must be at least 8 characters.")
	} else if req.Password != req.PasswordConfirm {
		verr.add("password", "Password fields didn't match.")
	}

	if req.Role != "" && !models.ValidRole(req.Role) {
		verr.add("role", "Invalid user role.")
	}

	if verr.empty() {
		return nil
	}
	return verr
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(&user)
}

// Refresh rotates the refresh token: the presented token is revoked and
// a fresh pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.TokenPair, error) {
	tokenHash := hashToken(req.Refresh)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

// Logout blacklists the presented refresh token.
func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.Refresh)

	result := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked = ?", tokenHash, false).
		Update("revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidToken
	}
	return nil
}

func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile mutates name and phone only. Role, email and the fire
// team fields are immutable after registration.
func (s *AuthService) UpdateProfile(user *models.User, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			verr := newValidationError()
			verr.add("name", "This field may not be blank.")
			return nil, verr
		}
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	resp := MapUserToResponse(user)
	return &resp, nil
}

// Authenticate resolves an access token back to its user record.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return s.GetUser(userID)
}

func (s *AuthService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:   MapUserToResponse(user),
		Tokens: *pair,
	}, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

// MapUserToResponse strips the password hash and internal fields.
func MapUserToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		Role:        user.Role,
		BadgeNumber: user.BadgeNumber,
		FireStation: user.FireStation,
		CreatedAt:   user.CreatedAt,
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
