package services

import (
	"errors"
	"testing"

	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:           "citizen@example.com",
		Name:            "Jane Citizen",
		Phone:           "+1234567890",
		Password:        "s3cretpass",
		PasswordConfirm: "s3cretpass",
	}
}

func TestRegister_DefaultsToPublicRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(validRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, models.RolePublic, resp.User.Role)
	assert.Equal(t, "citizen@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Tokens.Access)
	assert.NotEmpty(t, resp.Tokens.Refresh)
}

func TestRegister_FireTeamKeepsBadgeAndStation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	req := validRegisterRequest()
	req.Email = "team@example.com"
	req.Role = models.RoleFireTeam
	req.BadgeNumber = "FD-0042"
	req.FireStation = "Station 7"

	resp, err := svc.Register(req)
	require.NoError(t, err)

	require.NotNil(t, resp.User.BadgeNumber)
	assert.Equal(t, "FD-0042", *resp.User.BadgeNumber)
	require.NotNil(t, resp.User.FireStation)
	assert.Equal(t, "Station 7", *resp.User.FireStation)
}

func TestRegister_BadgeDroppedForPublicRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	req := validRegisterRequest()
	req.BadgeNumber = "FD-0042"
	req.FireStation = "Station 7"

	resp, err := svc.Register(req)
	require.NoError(t, err)

	assert.Nil(t, resp.User.BadgeNumber)
	assert.Nil(t, resp.User.FireStation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Register(validRegisterRequest())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields["email"], "user with this email already exists.")
}

func TestRegister_ValidationFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
		field  string
	}{
		{"missing email", func(r *dto.RegisterRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"missing name", func(r *dto.RegisterRequest) { r.Name = "  " }, "name"},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "short"; r.PasswordConfirm = "short" }, "password"},
		{"password mismatch", func(r *dto.RegisterRequest) { r.PasswordConfirm = "different1" }, "password"},
		{"unknown role", func(r *dto.RegisterRequest) { r.Role = "chief" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := svc.Register(req)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered, err := svc.Register(validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{
		Email:    "Citizen@Example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	// The issued access token resolves back to the same account.
	user, err := svc.Authenticate(resp.Tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "citizen@example.com", Password: "wrongpass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered, err := svc.Register(validRegisterRequest())
	require.NoError(t, err)

	pair, err := svc.Refresh(&dto.RefreshRequest{Refresh: registered.Tokens.Refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEqual(t, registered.Tokens.Refresh, pair.Refresh)

	// The old token is revoked by rotation.
	_, err = svc.Refresh(&dto.RefreshRequest{Refresh: registered.Tokens.Refresh})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rotated token still works.
	_, err = svc.Refresh(&dto.RefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
}

func TestRefresh_UnknownToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Refresh(&dto.RefreshRequest{Refresh: "never-issued"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered, err := svc.Register(validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{Refresh: registered.Tokens.Refresh}))

	_, err = svc.Refresh(&dto.RefreshRequest{Refresh: registered.Tokens.Refresh})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Revoking twice reports an invalid token.
	err = svc.Logout(&dto.LogoutRequest{Refresh: registered.Tokens.Refresh})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_RejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Authenticate("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	user := createTestUser(t, db, "citizen@example.com", models.RolePublic)

	name := "Renamed Citizen"
	phone := "+1987654321"
	resp, err := svc.UpdateProfile(user, &dto.UpdateProfileRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Citizen", resp.Name)
	assert.Equal(t, "+1987654321", resp.Phone)

	stored, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Citizen", stored.Name)
}

func TestUpdateProfile_BlankNameRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	user := createTestUser(t, db, "citizen@example.com", models.RolePublic)

	blank := "  "
	_, err := svc.UpdateProfile(user, &dto.UpdateProfileRequest{Name: &blank})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
}
