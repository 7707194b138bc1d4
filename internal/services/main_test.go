package services

import (
	"fmt"
	"testing"
	"time"

	"artbook_backend/internal/auth"
	"artbook_backend/internal/config"
	"artbook_backend/internal/email"
	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB поднимает изолированную in-memory базу для одного теста
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.RoleAssignment{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.ArtistProfile{},
		&models.Booking{},
		&models.Review{},
		&models.PortfolioImage{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 24 * 7
	cfg.Upload.MaxSize = 5 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	return cfg
}

func newTestEmailService() *EmailService {
	return NewEmailService(email.NewNoopProvider())
}

// seedUser создает пользователя с профилем и ролью
func seedUser(t *testing.T, db *gorm.DB, emailAddr, fullName string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{Email: emailAddr, PasswordHash: hash}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Profile{
		UserID:   user.ID,
		FullName: fullName,
		Email:    emailAddr,
	}).Error)
	require.NoError(t, db.Create(&models.RoleAssignment{
		UserID: user.ID,
		Role:   role,
	}).Error)

	return user
}

// seedArtist создает артиста с витриной и заданной ставкой
func seedArtist(t *testing.T, db *gorm.DB, emailAddr, fullName string, hourlyRate float64) (*models.User, *models.ArtistProfile) {
	t.Helper()

	user := seedUser(t, db, emailAddr, fullName, models.UserRoleArtist)
	artist := &models.ArtistProfile{
		UserID:     user.ID,
		Bio:        "Test artist",
		HourlyRate: hourlyRate,
	}
	require.NoError(t, db.Create(artist).Error)

	return user, artist
}

func seedBooking(t *testing.T, db *gorm.DB, artist *models.ArtistProfile, clientID string, status models.BookingStatus, totalAmount float64) *models.Booking {
	t.Helper()

	booking := &models.Booking{
		ArtistID:      artist.ID,
		ClientID:      clientID,
		BookingDate:   time.Now().Add(48 * time.Hour),
		ServiceType:   "Portrait session",
		DurationHours: 2,
		TotalAmount:   totalAmount,
		Status:        status,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

// waitForNotification дожидается уведомления, которое сервис пишет
// из отдельной горутины
func waitForNotification(t *testing.T, db *gorm.DB, userID, notifType string) *models.Notification {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		var n models.Notification
		if err := db.Where("user_id = ? AND type = ?", userID, notifType).First(&n).Error; err == nil {
			return &n
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("notification of type %q for user %s never arrived", notifType, userID)
	return nil
}

func newBookingServiceForTest(db *gorm.DB) BookingService {
	return NewBookingService(
		db,
		repositories.NewBookingRepository(db),
		repositories.NewArtistRepository(db),
		repositories.NewProfileRepository(db),
		repositories.NewRoleRepository(db),
		repositories.NewNotificationRepository(db),
	)
}

func newReviewServiceForTest(db *gorm.DB) ReviewService {
	return NewReviewService(
		db,
		repositories.NewReviewRepository(db),
		repositories.NewBookingRepository(db),
		repositories.NewArtistRepository(db),
		repositories.NewProfileRepository(db),
		repositories.NewNotificationRepository(db),
	)
}

func newAuthServiceForTest(db *gorm.DB) AuthService {
	return NewAuthService(
		db,
		repositories.NewUserRepository(db),
		repositories.NewRoleRepository(db),
		repositories.NewProfileRepository(db),
		repositories.NewArtistRepository(db),
		repositories.NewRefreshTokenRepository(db),
		newTestEmailService(),
		newTestConfig(),
	)
}
