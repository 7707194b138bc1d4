package repositories

import (
	"testing"

	"artbook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReviewCreate_SecondReviewForBookingIsDuplicatedKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)

	booking := createBooking(t, db, models.BookingStatusCompleted)

	require.NoError(t, repo.Create(&models.Review{
		BookingID: booking.ID,
		ArtistID:  "artist-1",
		ClientID:  "client-1",
		Rating:    5,
		Status:    models.ReviewStatusPending,
	}))

	err := repo.Create(&models.Review{
		BookingID: booking.ID,
		ArtistID:  "artist-1",
		ClientID:  "client-1",
		Rating:    3,
		Status:    models.ReviewStatusPending,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
