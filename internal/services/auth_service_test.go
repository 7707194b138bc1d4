package services

import (
	"testing"
	"time"

	"artbook_backend/internal/models"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Client(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "client@example.com",
		Password: "password123",
		FullName: "Test Client",
		Role:     "client",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "client", resp.User.Role)
	assert.Equal(t, "Test Client", resp.User.Profile.FullName)
	assert.Nil(t, resp.User.ArtistProfile)
}

func TestRegister_ArtistGetsDefaultShowcase(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "artist@example.com",
		Password: "password123",
		FullName: "Test Artist",
		Role:     "artist",
	})
	require.NoError(t, err)
	assert.Equal(t, "artist", resp.User.Role)

	var artist models.ArtistProfile
	require.NoError(t, db.Where("user_id = ?", resp.User.ID).First(&artist).Error)
	assert.Equal(t, defaultArtistBio, artist.Bio)
	assert.Equal(t, float64(defaultArtistHourlyRate), artist.HourlyRate)
	assert.Zero(t, artist.Rating)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	req := &dto.RegisterRequest{
		Email:    "dup@example.com",
		Password: "password123",
		FullName: "First",
		Role:     "client",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	seedUser(t, db, "login@example.com", "Login User", models.UserRoleClient)

	resp, err := svc.Login(&dto.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "client", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	seedUser(t, db, "login@example.com", "Login User", models.UserRoleClient)

	_, err := svc.Login(&dto.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentialsError)

	// Неизвестный email дает ту же ошибку
	_, err = svc.Login(&dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentialsError)
}

func TestRefresh_RotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	reg, err := svc.Register(&dto.RegisterRequest{
		Email:    "refresh@example.com",
		Password: "password123",
		FullName: "Refresh User",
		Role:     "client",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// Старый токен погашен
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	user := seedUser(t, db, "expired@example.com", "Expired", models.UserRoleClient)

	require.NoError(t, db.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}).Error)

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "stale-token"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestChangePassword_RevokesSessions(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	reg, err := svc.Register(&dto.RegisterRequest{
		Email:    "change@example.com",
		Password: "password123",
		FullName: "Change User",
		Role:     "client",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(reg.User.ID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	})
	require.NoError(t, err)

	// Старый пароль больше не работает
	_, err = svc.Login(&dto.LoginRequest{Email: "change@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentialsError)

	_, err = svc.Login(&dto.LoginRequest{Email: "change@example.com", Password: "newpassword456"})
	assert.NoError(t, err)

	// Все прежние refresh-сессии погашены
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	user := seedUser(t, db, "wrongold@example.com", "User", models.UserRoleClient)

	err := svc.ChangePassword(user.ID, &dto.ChangePasswordRequest{
		OldPassword: "not-the-password",
		NewPassword: "newpassword456",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentialsError)
}

func TestResetPassword_Flow(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	user := seedUser(t, db, "reset@example.com", "Reset User", models.UserRoleClient)

	require.NoError(t, svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "reset@example.com"}))

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	require.NotEmpty(t, stored.ResetToken)

	err := svc.ResetPassword(&dto.ResetPasswordRequest{
		Token:       stored.ResetToken,
		NewPassword: "resetpassword789",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "reset@example.com", Password: "resetpassword789"})
	assert.NoError(t, err)

	// Токен одноразовый
	err = svc.ResetPassword(&dto.ResetPasswordRequest{
		Token:       stored.ResetToken,
		NewPassword: "another-password",
	})
	assert.Error(t, err)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	assert.NoError(t, svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "ghost@example.com"}))
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	_, err := svc.Register(&dto.RegisterRequest{
		Email:    "sneaky@example.com",
		Password: "password123",
		FullName: "Sneaky",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}
