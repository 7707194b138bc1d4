package services

import (
	"context"
	"errors"
	"time"

	"artbook_backend/internal/auth"
	"artbook_backend/internal/config"
	"artbook_backend/internal/logger"
	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Стартовые значения профиля артиста при регистрации
const (
	defaultArtistBio        = "New artist - profile under construction"
	defaultArtistHourlyRate = 1000
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error)
	Logout(req *dto.LogoutRequest) error
	Me(userID string) (*dto.UserResponse, error)
	ChangePassword(userID string, req *dto.ChangePasswordRequest) error
	ForgotPassword(req *dto.ForgotPasswordRequest) error
	ResetPassword(req *dto.ResetPasswordRequest) error
}

type authService struct {
	db           *gorm.DB
	userRepo     repositories.UserRepository
	roleRepo     repositories.RoleRepository
	profileRepo  repositories.ProfileRepository
	artistRepo   repositories.ArtistRepository
	refreshRepo  repositories.RefreshTokenRepository
	emailService *EmailService
	cfg          *config.Config
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	profileRepo repositories.ProfileRepository,
	artistRepo repositories.ArtistRepository,
	refreshRepo repositories.RefreshTokenRepository,
	emailService *EmailService,
	cfg *config.Config,
) AuthService {
	return &authService{
		db:           db,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		profileRepo:  profileRepo,
		artistRepo:   artistRepo,
		refreshRepo:  refreshRepo,
		emailService: emailService,
		cfg:          cfg,
	}
}

// Register создает пользователя, профиль и роль одной транзакцией.
// Для артистов дополнительно создается витрина с дефолтными значениями.
func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !auth.SelfRegistrableRole(req.Role) {
		return nil, apperrors.ErrInvalidUserRole
	}
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := models.UserRole(req.Role)
	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		if err := s.profileRepo.WithTx(tx).Create(&models.Profile{
			UserID:   user.ID,
			FullName: req.FullName,
			Email:    req.Email,
		}); err != nil {
			return err
		}
		if err := s.roleRepo.WithTx(tx).Assign(user.ID, role); err != nil {
			return err
		}
		if role == models.UserRoleArtist {
			if err := s.artistRepo.WithTx(tx).Create(&models.ArtistProfile{
				UserID:     user.ID,
				Bio:        defaultArtistBio,
				HourlyRate: defaultArtistHourlyRate,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Две одновременные регистрации: проигравший упирается
		// в уникальный индекс по email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.DatabaseError(err)
	}

	// Письмо не должно блокировать регистрацию
	go func() {
		if err := s.emailService.SendWelcomeEmail(context.Background(), req.Email, req.FullName, role == models.UserRoleArtist); err != nil {
			logger.Warn("failed to send welcome email", "error", err, "email", req.Email)
		}
	}()

	return s.issueTokens(user.ID, string(role))
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		// Не раскрываем, существует ли такой email
		return nil, apperrors.ErrInvalidCredentialsError
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentialsError
	}

	role, err := s.resolveRole(user.ID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user.ID, role)
}

func (s *authService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	stored, err := s.refreshRepo.FindByToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = s.refreshRepo.DeleteByToken(req.RefreshToken)
		return nil, apperrors.ErrInvalidRefreshToken
	}

	// Ротация: старый токен гасится
	if err := s.refreshRepo.DeleteByToken(req.RefreshToken); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	role, err := s.resolveRole(stored.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(stored.UserID, role)
}

func (s *authService) Logout(req *dto.LogoutRequest) error {
	if err := s.refreshRepo.DeleteByToken(req.RefreshToken); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *authService) Me(userID string) (*dto.UserResponse, error) {
	return s.buildUserResponse(userID)
}

func (s *authService) ChangePassword(userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	if !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentialsError
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(userID, newHash); err != nil {
		return apperrors.DatabaseError(err)
	}

	// Смена пароля гасит все refresh-сессии
	if err := s.refreshRepo.DeleteByUserID(userID); err != nil {
		logger.Warn("failed to revoke refresh tokens", "error", err, "user_id", userID)
	}
	return nil
}

func (s *authService) ForgotPassword(req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		// Одинаковый ответ для существующих и несуществующих email
		return nil
	}

	token, err := auth.GenerateRefreshToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	expires := time.Now().Add(time.Hour)
	if err := s.userRepo.SetResetToken(user.ID, token, expires); err != nil {
		return apperrors.DatabaseError(err)
	}

	go func() {
		if err := s.emailService.SendPasswordResetEmail(context.Background(), req.Email, token); err != nil {
			logger.Warn("failed to send password reset email", "error", err, "email", req.Email)
		}
	}()

	return nil
}

func (s *authService) ResetPassword(req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByResetToken(req.Token)
	if err != nil {
		return apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid or expired reset token", 401)
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, newHash); err != nil {
		return apperrors.DatabaseError(err)
	}
	if err := s.userRepo.ClearResetToken(user.ID); err != nil {
		return apperrors.DatabaseError(err)
	}
	if err := s.refreshRepo.DeleteByUserID(user.ID); err != nil {
		logger.Warn("failed to revoke refresh tokens", "error", err, "user_id", user.ID)
	}
	return nil
}

// --- helpers ---

func (s *authService) resolveRole(userID string) (string, error) {
	entry, err := s.roleRepo.FindByUserID(userID)
	if err != nil {
		// Пользователь без назначенной роли получает client
		return string(models.UserRoleClient), nil
	}
	return string(entry.Role), nil
}

func (s *authService) issueTokens(userID, role string) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(userID, role, s.cfg.JWT.Secret, time.Duration(s.cfg.JWT.TTL)*time.Minute)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.refreshRepo.Create(&models.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.JWT.RefreshTTL) * time.Hour),
	}); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	userResp, err := s.buildUserResponse(userID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResp,
	}, nil
}

func (s *authService) buildUserResponse(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	role, err := s.resolveRole(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  role,
	}

	if user.Profile != nil {
		resp.Profile = &dto.ProfileInfo{
			FullName:  user.Profile.FullName,
			Email:     user.Profile.Email,
			AvatarURL: user.Profile.AvatarURL,
			Location:  user.Profile.Location,
			Phone:     user.Profile.Phone,
		}
	}

	if user.ArtistProfile != nil {
		resp.ArtistProfile = buildArtistResponse(user.ArtistProfile, nil)
	}

	return resp, nil
}
