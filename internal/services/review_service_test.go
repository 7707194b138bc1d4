package services

import (
	"testing"

	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_OnCompletedBooking(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)
	booking := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	review, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{
		BookingID: booking.ID,
		Rating:    5,
		Comment:   "Great work",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", review.Status)
	// Артист берется из брони, а не из запроса
	assert.Equal(t, artist.ID, review.ArtistID)
	assert.Equal(t, client.ID, review.ClientID)
}

func TestCreateReview_RequiresCompletedBooking(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusAccepted,
		models.BookingStatusDeclined,
		models.BookingStatusCancelled,
	} {
		booking := seedBooking(t, db, artist, client.ID, status, 6000)
		_, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{
			BookingID: booking.ID,
			Rating:    4,
		})
		assert.ErrorIs(t, err, apperrors.ErrBookingNotCompleted, "status %s", status)
	}
}

func TestCreateReview_OnlyBookingClient(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	other := seedUser(t, db, "other@example.com", "Other", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)
	booking := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	_, err := svc.CreateReview(other.ID, &dto.CreateReviewRequest{
		BookingID: booking.ID,
		Rating:    1,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotBookingParticipant)
}

func TestCreateReview_OnePerBooking(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)
	booking := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	_, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: booking.ID, Rating: 5})
	require.NoError(t, err)

	_, err = svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: booking.ID, Rating: 3})
	assert.ErrorIs(t, err, apperrors.ErrReviewAlreadyExists)
}

func TestModerateReview_ApproveRecalculatesRating(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	b1 := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)
	b2 := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	r1, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: b1.ID, Rating: 5})
	require.NoError(t, err)
	r2, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: b2.ID, Rating: 2})
	require.NoError(t, err)

	// До модерации рейтинг не меняется
	var stored models.ArtistProfile
	require.NoError(t, db.First(&stored, "id = ?", artist.ID).Error)
	assert.Zero(t, stored.Rating)
	assert.Zero(t, stored.TotalReviews)

	require.NoError(t, svc.ApproveReview(r1.ID, &dto.ModerateReviewRequest{}))
	require.NoError(t, db.First(&stored, "id = ?", artist.ID).Error)
	assert.Equal(t, float64(5), stored.Rating)
	assert.Equal(t, 1, stored.TotalReviews)

	// Отклоненный отзыв в рейтинг не входит
	require.NoError(t, svc.RejectReview(r2.ID, &dto.ModerateReviewRequest{AdminNotes: "Spam"}))
	require.NoError(t, db.First(&stored, "id = ?", artist.ID).Error)
	assert.Equal(t, float64(5), stored.Rating)
	assert.Equal(t, 1, stored.TotalReviews)
}

func TestModerateReview_OnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)
	booking := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	review, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: booking.ID, Rating: 4})
	require.NoError(t, err)

	require.NoError(t, svc.ApproveReview(review.ID, &dto.ModerateReviewRequest{}))

	err = svc.RejectReview(review.ID, &dto.ModerateReviewRequest{})
	assert.ErrorIs(t, err, apperrors.ErrReviewNotPending)
}

func TestListArtistReviews_ApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	b1 := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)
	b2 := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	r1, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: b1.ID, Rating: 5, Comment: "approved one"})
	require.NoError(t, err)
	_, err = svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: b2.ID, Rating: 1, Comment: "still pending"})
	require.NoError(t, err)

	require.NoError(t, svc.ApproveReview(r1.ID, &dto.ModerateReviewRequest{}))

	public, err := svc.ListArtistReviews(artist.ID, repositories.ReviewCriteria{})
	require.NoError(t, err)
	require.Equal(t, int64(1), public.Total)
	assert.Equal(t, "approved one", public.Reviews[0].Comment)
	// Служебные пометки наружу не отдаются
	assert.Empty(t, public.Reviews[0].AdminNotes)
}

func TestListAllReviews_StatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	b1 := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)
	b2 := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	r1, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: b1.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: b2.ID, Rating: 3})
	require.NoError(t, err)

	require.NoError(t, svc.ApproveReview(r1.ID, &dto.ModerateReviewRequest{}))

	all, err := svc.ListAllReviews(repositories.ReviewCriteria{Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	pending, err := svc.ListAllReviews(repositories.ReviewCriteria{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Total)

	approved, err := svc.ListAllReviews(repositories.ReviewCriteria{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), approved.Total)
}

func TestGetArtistRating(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)

	b1 := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)
	b2 := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	r1, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: b1.ID, Rating: 5})
	require.NoError(t, err)
	r2, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: b2.ID, Rating: 2})
	require.NoError(t, err)

	require.NoError(t, svc.ApproveReview(r1.ID, &dto.ModerateReviewRequest{}))
	require.NoError(t, svc.ApproveReview(r2.ID, &dto.ModerateReviewRequest{}))

	rating, err := svc.GetArtistRating(artist.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rating.TotalReviews)
	assert.InDelta(t, 3.5, rating.AverageRating, 0.001)
}

func TestCreateReview_NotifiesArtist(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	artistUser, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)
	booking := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	review, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: booking.ID, Rating: 4})
	require.NoError(t, err)

	n := waitForNotification(t, db, artistUser.ID, models.NotificationTypeReview)
	assert.Equal(t, "New Review Pending", n.Title)
	assert.Contains(t, n.Message, "4 stars")
	assert.Contains(t, string(n.Data), review.ID)
}

func TestModerateReview_NotifiesClient(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)
	booking := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	review, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: booking.ID, Rating: 5})
	require.NoError(t, err)

	require.NoError(t, svc.RejectReview(review.ID, &dto.ModerateReviewRequest{AdminNotes: "Spam"}))

	n := waitForNotification(t, db, client.ID, models.NotificationTypeReview)
	assert.Equal(t, "Review Moderated", n.Title)
	assert.Contains(t, n.Message, "rejected")
}

func TestCreateReview_DatabaseFailureIsNotADuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewServiceForTest(db)
	client := seedUser(t, db, "client@example.com", "Client", models.UserRoleClient)
	_, artist := seedArtist(t, db, "artist@example.com", "Artist", 3000)
	booking := seedBooking(t, db, artist, client.ID, models.BookingStatusCompleted, 6000)

	// Нулевой рейтинг режется check-констрейнтом уже в базе
	_, err := svc.CreateReview(client.ID, &dto.CreateReviewRequest{BookingID: booking.ID, Rating: 0})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrReviewAlreadyExists)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
}
