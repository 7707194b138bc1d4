package repositories

import (
	"errors"

	"artbook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrArtistNotFound = errors.New("artist profile not found")

// ArtistSearchCriteria - фильтры публичного каталога артистов
type ArtistSearchCriteria struct {
	Specialty     string  `form:"specialty"`
	Location      string  `form:"location"`
	MinRating     float64 `form:"min_rating"`
	MaxHourlyRate float64 `form:"max_hourly_rate"`
	VerifiedOnly  bool    `form:"verified_only"`
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
}

type ArtistRepository interface {
	Create(profile *models.ArtistProfile) error
	FindByID(id string) (*models.ArtistProfile, error)
	FindByUserID(userID string) (*models.ArtistProfile, error)
	Update(profile *models.ArtistProfile) error
	Search(criteria ArtistSearchCriteria) ([]models.ArtistProfile, int64, error)
	CountAll() (int64, error)

	// RecalculateRating пересчитывает rating/total_reviews по одобренным отзывам
	RecalculateRating(artistID string) error
	// RecalculateTotalBookings пересчитывает счетчик завершенных броней
	RecalculateTotalBookings(artistID string) error

	WithTx(tx *gorm.DB) ArtistRepository
}

type ArtistRepositoryImpl struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &ArtistRepositoryImpl{db: db}
}

func (r *ArtistRepositoryImpl) WithTx(tx *gorm.DB) ArtistRepository {
	return &ArtistRepositoryImpl{db: tx}
}

func (r *ArtistRepositoryImpl) Create(profile *models.ArtistProfile) error {
	return r.db.Create(profile).Error
}

func (r *ArtistRepositoryImpl) FindByID(id string) (*models.ArtistProfile, error) {
	var profile models.ArtistProfile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ArtistRepositoryImpl) FindByUserID(userID string) (*models.ArtistProfile, error) {
	var profile models.ArtistProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ArtistRepositoryImpl) Update(profile *models.ArtistProfile) error {
	return r.db.Save(profile).Error
}

func (r *ArtistRepositoryImpl) Search(criteria ArtistSearchCriteria) ([]models.ArtistProfile, int64, error) {
	query := r.db.Model(&models.ArtistProfile{})

	if criteria.Specialty != "" {
		// Специальности хранятся JSON-массивом, ищем по подстроке
		query = query.Where("specialties LIKE ?", "%"+criteria.Specialty+"%")
	}
	if criteria.MinRating > 0 {
		query = query.Where("rating >= ?", criteria.MinRating)
	}
	if criteria.MaxHourlyRate > 0 {
		query = query.Where("hourly_rate <= ?", criteria.MaxHourlyRate)
	}
	if criteria.VerifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	if criteria.Location != "" {
		query = query.Where(
			"user_id IN (?)",
			r.db.Model(&models.Profile{}).Select("user_id").Where("location LIKE ?", "%"+criteria.Location+"%"),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	var profiles []models.ArtistProfile
	err := query.Order("rating DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error

	return profiles, total, err
}

func (r *ArtistRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.ArtistProfile{}).Count(&count).Error
	return count, err
}

func (r *ArtistRepositoryImpl) RecalculateRating(artistID string) error {
	return r.db.Model(&models.ArtistProfile{}).
		Where("id = ?", artistID).
		Updates(map[string]interface{}{
			"rating": r.db.Model(&models.Review{}).
				Select("COALESCE(AVG(rating), 0)").
				Where("artist_id = ? AND status = ?", artistID, models.ReviewStatusApproved),
			"total_reviews": r.db.Model(&models.Review{}).
				Select("COUNT(*)").
				Where("artist_id = ? AND status = ?", artistID, models.ReviewStatusApproved),
		}).Error
}

func (r *ArtistRepositoryImpl) RecalculateTotalBookings(artistID string) error {
	return r.db.Model(&models.ArtistProfile{}).
		Where("id = ?", artistID).
		Update("total_bookings", r.db.Model(&models.Booking{}).
			Select("COUNT(*)").
			Where("artist_id = ? AND status = ?", artistID, models.BookingStatusCompleted),
		).Error
}
