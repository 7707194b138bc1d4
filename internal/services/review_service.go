package services

import (
	"errors"

	"artbook_backend/internal/logger"
	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"
	"artbook_backend/internal/services/dto"
	"artbook_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(clientID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListMyReviews(clientID string, criteria repositories.ReviewCriteria) (*dto.ReviewListResponse, error)
	ListArtistReviews(artistID string, criteria repositories.ReviewCriteria) (*dto.ReviewListResponse, error)
	GetArtistRating(artistID string) (*dto.RatingResponse, error)

	// Админская модерация
	ListAllReviews(criteria repositories.ReviewCriteria) (*dto.ReviewListResponse, error)
	ApproveReview(reviewID string, req *dto.ModerateReviewRequest) error
	RejectReview(reviewID string, req *dto.ModerateReviewRequest) error
}

type reviewService struct {
	db               *gorm.DB
	reviewRepo       repositories.ReviewRepository
	bookingRepo      repositories.BookingRepository
	artistRepo       repositories.ArtistRepository
	profileRepo      repositories.ProfileRepository
	notificationRepo repositories.NotificationRepository
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo repositories.ReviewRepository,
	bookingRepo repositories.BookingRepository,
	artistRepo repositories.ArtistRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
) ReviewService {
	return &reviewService{
		db:               db,
		reviewRepo:       reviewRepo,
		bookingRepo:      bookingRepo,
		artistRepo:       artistRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateReview создает отзыв на завершенную бронь. Артист берется из
// самой брони, клиент из токена - подменить их в запросе нельзя.
func (s *reviewService) CreateReview(clientID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	booking, err := s.bookingRepo.FindByID(req.BookingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if booking.ClientID != clientID {
		return nil, apperrors.ErrNotBookingParticipant
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.ErrBookingNotCompleted
	}

	exists, err := s.reviewRepo.ExistsForBooking(req.BookingID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if exists {
		return nil, apperrors.ErrReviewAlreadyExists
	}

	review := &models.Review{
		BookingID: booking.ID,
		ArtistID:  booking.ArtistID,
		ClientID:  clientID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Status:    models.ReviewStatusPending,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		// Уникальный индекс по booking_id перехватывает гонку двух запросов
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrReviewAlreadyExists
		}
		return nil, apperrors.DatabaseError(err)
	}

	go func(artistUserID, reviewID string, rating int) {
		if err := s.notificationRepo.CreateReviewPendingNotification(artistUserID, reviewID, rating); err != nil {
			logger.Warn("failed to create review notification", "error", err, "review_id", reviewID)
		}
	}(booking.Artist.UserID, review.ID, req.Rating)

	return buildReviewResponse(review), nil
}

func (s *reviewService) ListMyReviews(clientID string, criteria repositories.ReviewCriteria) (*dto.ReviewListResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)

	reviews, total, err := s.reviewRepo.FindByClient(clientID, criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.buildReviewList(reviews, total, criteria, true), nil
}

// ListArtistReviews - публичный список, видны только одобренные отзывы
func (s *reviewService) ListArtistReviews(artistID string, criteria repositories.ReviewCriteria) (*dto.ReviewListResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)

	reviews, total, err := s.reviewRepo.FindApprovedByArtist(artistID, criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.buildReviewList(reviews, total, criteria, false), nil
}

func (s *reviewService) GetArtistRating(artistID string) (*dto.RatingResponse, error) {
	stats, err := s.reviewRepo.GetRatingStats(artistID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.RatingResponse{
		AverageRating: stats.AverageRating,
		TotalReviews:  stats.TotalReviews,
	}, nil
}

func (s *reviewService) ListAllReviews(criteria repositories.ReviewCriteria) (*dto.ReviewListResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)

	reviews, total, err := s.reviewRepo.FindAll(criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.buildReviewList(reviews, total, criteria, true), nil
}

func (s *reviewService) ApproveReview(reviewID string, req *dto.ModerateReviewRequest) error {
	return s.moderate(reviewID, models.ReviewStatusApproved, req.AdminNotes)
}

func (s *reviewService) RejectReview(reviewID string, req *dto.ModerateReviewRequest) error {
	return s.moderate(reviewID, models.ReviewStatusRejected, req.AdminNotes)
}

// moderate переводит pending-отзыв в вердикт и в той же транзакции
// пересчитывает rating/total_reviews артиста по одобренным отзывам.
// Повторная модерация возвращает конфликт.
func (s *reviewService) moderate(reviewID string, verdict models.ReviewStatus, adminNotes string) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if review.Status != models.ReviewStatusPending {
		return apperrors.ErrReviewNotPending
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.WithTx(tx).UpdateStatusIf(reviewID, models.ReviewStatusPending, verdict, adminNotes); err != nil {
			return err
		}
		return s.artistRepo.WithTx(tx).RecalculateRating(review.ArtistID)
	})
	if err != nil {
		switch err {
		case repositories.ErrReviewNotFound:
			return apperrors.ErrNotFound(err)
		case repositories.ErrReviewStatusConflict:
			return apperrors.ErrReviewNotPending
		default:
			return apperrors.DatabaseError(err)
		}
	}

	go func(clientID, reviewID string, verdict models.ReviewStatus) {
		if err := s.notificationRepo.CreateReviewModeratedNotification(clientID, reviewID, verdict); err != nil {
			logger.Warn("failed to create moderation notification", "error", err, "review_id", reviewID)
		}
	}(review.ClientID, reviewID, verdict)

	return nil
}

func (s *reviewService) buildReviewList(reviews []models.Review, total int64, criteria repositories.ReviewCriteria, withAdminNotes bool) *dto.ReviewListResponse {
	clientIDs := make([]string, 0, len(reviews))
	for i := range reviews {
		clientIDs = append(clientIDs, reviews[i].ClientID)
	}
	clientProfiles, err := s.profileRepo.FindByUserIDs(clientIDs)
	if err != nil {
		clientProfiles = nil
	}

	items := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		item := buildReviewResponse(&reviews[i])
		if withAdminNotes {
			item.AdminNotes = reviews[i].AdminNotes
		}
		if p, ok := clientProfiles[reviews[i].ClientID]; ok {
			item.Client = buildProfileInfo(&p)
		}
		items = append(items, item)
	}

	return &dto.ReviewListResponse{
		Reviews:    items,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages(total, criteria.PageSize),
	}
}

// buildReviewResponse намеренно не включает admin_notes:
// служебные пометки не для публичных списков
func buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        review.ID,
		BookingID: review.BookingID,
		ArtistID:  review.ArtistID,
		ClientID:  review.ClientID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Status:    string(review.Status),
		CreatedAt: review.CreatedAt,
	}
}
