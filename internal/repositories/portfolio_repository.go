package repositories

import (
	"errors"

	"artbook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPortfolioImageNotFound = errors.New("portfolio image not found")

type PortfolioRepository interface {
	Create(image *models.PortfolioImage) error
	FindByID(id string) (*models.PortfolioImage, error)
	FindByArtist(artistID string) ([]models.PortfolioImage, error)
	Update(image *models.PortfolioImage) error
	Delete(id string) error
	CountByArtist(artistID string) (int64, error)
}

type PortfolioRepositoryImpl struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &PortfolioRepositoryImpl{db: db}
}

func (r *PortfolioRepositoryImpl) Create(image *models.PortfolioImage) error {
	return r.db.Create(image).Error
}

func (r *PortfolioRepositoryImpl) FindByID(id string) (*models.PortfolioImage, error) {
	var image models.PortfolioImage
	if err := r.db.Where("id = ?", id).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *PortfolioRepositoryImpl) FindByArtist(artistID string) ([]models.PortfolioImage, error) {
	var images []models.PortfolioImage
	err := r.db.Where("artist_id = ?", artistID).
		Order("display_order ASC, created_at ASC").
		Find(&images).Error
	return images, err
}

func (r *PortfolioRepositoryImpl) Update(image *models.PortfolioImage) error {
	return r.db.Save(image).Error
}

func (r *PortfolioRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.PortfolioImage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioImageNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) CountByArtist(artistID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PortfolioImage{}).Where("artist_id = ?", artistID).Count(&count).Error
	return count, err
}
