package repositories

import (
	"errors"

	"artbook_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewStatusConflict - отзыв уже прошел модерацию
	ErrReviewStatusConflict = errors.New("review status conflict")
)

// ReviewCriteria - фильтры списков отзывов
type ReviewCriteria struct {
	Status   string `form:"status"` // all | pending | approved | rejected
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// RatingStats - агрегат по одобренным отзывам артиста
type RatingStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id string) (*models.Review, error)
	FindByBookingID(bookingID string) (*models.Review, error)
	ExistsForBooking(bookingID string) (bool, error)
	FindApprovedByArtist(artistID string, criteria ReviewCriteria) ([]models.Review, int64, error)
	FindByClient(clientID string, criteria ReviewCriteria) ([]models.Review, int64, error)
	FindAll(criteria ReviewCriteria) ([]models.Review, int64, error)

	// UpdateStatusIf переводит отзыв из from в to; при несовпадении
	// текущего статуса возвращает ErrReviewStatusConflict
	UpdateStatusIf(id string, from, to models.ReviewStatus, adminNotes string) error

	GetRatingStats(artistID string) (*RatingStats, error)
	CountByStatus(status models.ReviewStatus) (int64, error)
	FindRecentPending(limit int) ([]models.Review, error)

	WithTx(tx *gorm.DB) ReviewRepository
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) WithTx(tx *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: tx}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Booking").Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByBookingID(bookingID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("booking_id = ?", bookingID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ExistsForBooking(bookingID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("booking_id = ?", bookingID).Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) FindApprovedByArtist(artistID string, criteria ReviewCriteria) ([]models.Review, int64, error) {
	query := r.db.Where("artist_id = ? AND status = ?", artistID, models.ReviewStatusApproved)
	return r.findFiltered(query, criteria)
}

func (r *ReviewRepositoryImpl) FindByClient(clientID string, criteria ReviewCriteria) ([]models.Review, int64, error) {
	query := r.db.Where("client_id = ?", clientID)
	if criteria.Status != "" && criteria.Status != "all" {
		query = query.Where("status = ?", criteria.Status)
	}
	return r.findFiltered(query, criteria)
}

func (r *ReviewRepositoryImpl) FindAll(criteria ReviewCriteria) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if criteria.Status != "" && criteria.Status != "all" {
		query = query.Where("status = ?", criteria.Status)
	}
	return r.findFiltered(query, criteria)
}

func (r *ReviewRepositoryImpl) findFiltered(query *gorm.DB, criteria ReviewCriteria) ([]models.Review, int64, error) {
	var total int64
	if err := query.Model(&models.Review{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	var reviews []models.Review
	err := query.Preload("Artist").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *ReviewRepositoryImpl) UpdateStatusIf(id string, from, to models.ReviewStatus, adminNotes string) error {
	updates := map[string]interface{}{"status": to}
	if adminNotes != "" {
		updates["admin_notes"] = adminNotes
	}

	result := r.db.Model(&models.Review{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Review{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrReviewNotFound
		}
		return ErrReviewStatusConflict
	}
	return nil
}

func (r *ReviewRepositoryImpl) GetRatingStats(artistID string) (*RatingStats, error) {
	var stats RatingStats
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average_rating, COUNT(*) as total_reviews").
		Where("artist_id = ? AND status = ?", artistID, models.ReviewStatusApproved).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ReviewRepositoryImpl) CountByStatus(status models.ReviewStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ReviewRepositoryImpl) FindRecentPending(limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Artist").
		Where("status = ?", models.ReviewStatusPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}
