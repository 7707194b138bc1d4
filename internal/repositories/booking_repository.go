package repositories

import (
	"errors"
	"time"

	"artbook_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrBookingStatusConflict - текущий статус не совпал с ожидаемым при обновлении
	ErrBookingStatusConflict = errors.New("booking status conflict")
)

// BookingCriteria - фильтры списков броней
type BookingCriteria struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// MonthlyBookingStat - агрегат по месяцу для дашбордов
type MonthlyBookingStat struct {
	Month     time.Time `json:"month"`
	Count     int64     `json:"count"`
	Revenue   float64   `json:"revenue"`
	Completed int64     `json:"completed"`
}

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	FindByClient(clientID string, criteria BookingCriteria) ([]models.Booking, int64, error)
	FindByArtist(artistID string, criteria BookingCriteria) ([]models.Booking, int64, error)

	// UpdateStatusIf выполняет условный переход статуса; при гонке
	// проигравший получает ErrBookingStatusConflict
	UpdateStatusIf(id string, from, to models.BookingStatus) error

	CountByClientAndStatus(clientID string, status models.BookingStatus) (int64, error)
	CountByArtistAndStatus(artistID string, status models.BookingStatus) (int64, error)
	CountByClient(clientID string) (int64, error)
	CountByArtist(artistID string) (int64, error)
	CountAll() (int64, error)

	// MonthlyStats считает брони и выручку в полуинтервале [from, to)
	MonthlyStats(artistID, clientID string, from, to time.Time) (*MonthlyBookingStat, error)

	WithTx(tx *gorm.DB) BookingRepository
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) WithTx(tx *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: tx}
}

func (r *BookingRepositoryImpl) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Preload("Artist").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByClient(clientID string, criteria BookingCriteria) ([]models.Booking, int64, error) {
	return r.findFiltered(r.db.Where("client_id = ?", clientID), criteria)
}

func (r *BookingRepositoryImpl) FindByArtist(artistID string, criteria BookingCriteria) ([]models.Booking, int64, error) {
	return r.findFiltered(r.db.Where("artist_id = ?", artistID), criteria)
}

func (r *BookingRepositoryImpl) findFiltered(query *gorm.DB, criteria BookingCriteria) ([]models.Booking, int64, error) {
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Model(&models.Booking{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	var bookings []models.Booking
	err := query.Preload("Artist").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error

	return bookings, total, err
}

func (r *BookingRepositoryImpl) UpdateStatusIf(id string, from, to models.BookingStatus) error {
	result := r.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо брони нет, либо статус уже изменился
		var count int64
		if err := r.db.Model(&models.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrBookingNotFound
		}
		return ErrBookingStatusConflict
	}
	return nil
}

func (r *BookingRepositoryImpl) CountByClientAndStatus(clientID string, status models.BookingStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("client_id = ? AND status = ?", clientID, status).
		Count(&count).Error
	return count, err
}

func (r *BookingRepositoryImpl) CountByArtistAndStatus(artistID string, status models.BookingStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("artist_id = ? AND status = ?", artistID, status).
		Count(&count).Error
	return count, err
}

func (r *BookingRepositoryImpl) CountByClient(clientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

func (r *BookingRepositoryImpl) CountByArtist(artistID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).Where("artist_id = ?", artistID).Count(&count).Error
	return count, err
}

func (r *BookingRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).Count(&count).Error
	return count, err
}

func (r *BookingRepositoryImpl) MonthlyStats(artistID, clientID string, from, to time.Time) (*MonthlyBookingStat, error) {
	query := r.db.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", from, to)
	if artistID != "" {
		query = query.Where("artist_id = ?", artistID)
	}
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	stat := &MonthlyBookingStat{Month: from}
	if err := query.Count(&stat.Count).Error; err != nil {
		return nil, err
	}

	completedQuery := r.db.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ? AND status = ?", from, to, models.BookingStatusCompleted)
	if artistID != "" {
		completedQuery = completedQuery.Where("artist_id = ?", artistID)
	}
	if clientID != "" {
		completedQuery = completedQuery.Where("client_id = ?", clientID)
	}

	var revenue struct {
		Total float64
	}
	if err := completedQuery.Select("COALESCE(SUM(total_amount), 0) as total").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stat.Revenue = revenue.Total

	if err := completedQuery.Count(&stat.Completed).Error; err != nil {
		return nil, err
	}

	return stat, nil
}
