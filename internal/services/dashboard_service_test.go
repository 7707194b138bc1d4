package services

import (
	"testing"

	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardServiceForTest(db *gorm.DB) DashboardService {
	return NewDashboardService(
		repositories.NewBookingRepository(db),
		repositories.NewReviewRepository(db),
		repositories.NewArtistRepository(db),
		repositories.NewProfileRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewRoleRepository(db),
	)
}

func TestClientDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	seedBooking(t, db, artist, client.ID, models.BookingStatusPending, 6000)
	seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)
	completed := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	reviewSvc := newReviewServiceForTest(db)
	_, err := reviewSvc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: completed.ID, Rating: 5})
	require.NoError(t, err)

	dash, err := svc.ClientDashboard(client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), dash.TotalBookings)
	assert.Equal(t, int64(1), dash.PendingBookings)
	assert.Equal(t, int64(2), dash.CompletedBookings)
	assert.Equal(t, int64(1), dash.ReviewsGiven)
	assert.Len(t, dash.RecentBookings, 3)
}

func TestArtistDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	artistUser, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	seedBooking(t, db, artist, client.ID, models.BookingStatusPending, 6000)
	seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	require.NoError(t, db.Model(artist).Updates(map[string]interface{}{
		"rating":        4.5,
		"total_reviews": 2,
	}).Error)

	dash, err := svc.ArtistDashboard(artistUser.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.TotalBookings)
	assert.Equal(t, int64(1), dash.PendingBookings)
	assert.Equal(t, int64(1), dash.CompletedBookings)
	assert.Equal(t, 4.5, dash.Rating)
	assert.Equal(t, 2, dash.TotalReviews)
}

func TestAdminDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	seedUser(t, db, "admin@example.com", "Admin", models.UserRoleAdmin)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	booking := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	reviewSvc := newReviewServiceForTest(db)
	_, err := reviewSvc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: booking.ID, Rating: 4})
	require.NoError(t, err)

	dash, err := svc.AdminDashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(3), dash.TotalUsers)
	assert.Equal(t, int64(1), dash.TotalArtists)
	assert.Equal(t, int64(1), dash.TotalBookings)
	assert.Equal(t, int64(1), dash.PendingReviews)
	require.Len(t, dash.RecentPending, 1)
	assert.Equal(t, "Client", dash.RecentPending[0].Client.FullName)
}

func TestTrends(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	artistUser, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)
	seedBooking(t, db, artist, client.ID, models.BookingStatusPending, 3000)

	trends, err := svc.ArtistTrends(artistUser.ID, 3)
	require.NoError(t, err)
	require.Len(t, trends.Months, 3)

	// Последняя точка - текущий месяц
	current := trends.Months[len(trends.Months)-1]
	assert.Equal(t, int64(2), current.Bookings)
	assert.Equal(t, int64(1), current.Completed)
	assert.Equal(t, 6000.0, current.Revenue)

	// Вне диапазона запрос падает на значение по умолчанию
	wide, err := svc.AdminTrends(99)
	require.NoError(t, err)
	assert.Len(t, wide.Months, defaultTrendMonths)
}
