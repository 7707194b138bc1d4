package repositories

import (
	"fmt"
	"testing"
	"time"

	"artbook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ArtistProfile{},
		&models.Booking{},
		&models.Review{},
	))
	return db
}

func createBooking(t *testing.T, db *gorm.DB, status models.BookingStatus) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		ArtistID:      "artist-1",
		ClientID:      "client-1",
		ServiceType:   "Portrait session",
		BookingDate:   time.Now().Add(48 * time.Hour),
		DurationHours: 2,
		TotalAmount:   6000,
		Status:        status,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func TestUpdateStatusIf(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)

	booking := createBooking(t, db, models.BookingStatusPending)

	require.NoError(t, repo.UpdateStatusIf(booking.ID, models.BookingStatusPending, models.BookingStatusAccepted))

	stored, err := repo.FindByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, stored.Status)
}

// Нулевое число затронутых строк должно различаться: брони нет
// вообще или она уже не в ожидаемом статусе.
func TestUpdateStatusIf_Disambiguation(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)

	booking := createBooking(t, db, models.BookingStatusAccepted)

	err := repo.UpdateStatusIf(booking.ID, models.BookingStatusPending, models.BookingStatusAccepted)
	assert.ErrorIs(t, err, ErrBookingStatusConflict)

	err = repo.UpdateStatusIf("00000000-0000-0000-0000-000000000000", models.BookingStatusPending, models.BookingStatusAccepted)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestFindByClient_StatusFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)

	createBooking(t, db, models.BookingStatusPending)
	createBooking(t, db, models.BookingStatusCompleted)
	createBooking(t, db, models.BookingStatusCompleted)

	all, total, err := repo.FindByClient("client-1", BookingCriteria{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	completed, total, err := repo.FindByClient("client-1", BookingCriteria{Status: "completed", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, completed, 2)
}

func TestMonthlyStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)

	createBooking(t, db, models.BookingStatusCompleted)
	createBooking(t, db, models.BookingStatusCompleted)
	createBooking(t, db, models.BookingStatusPending)

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	stat, err := repo.MonthlyStats("artist-1", "", from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stat.Count)
	assert.Equal(t, int64(2), stat.Completed)
	assert.Equal(t, 12000.0, stat.Revenue)

	empty, err := repo.MonthlyStats("artist-2", "", from, to)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Revenue)
}
