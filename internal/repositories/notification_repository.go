package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"artbook_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

// NotificationCriteria - фильтры ленты уведомлений
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id string) (*models.Notification, error)
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID, userID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
	DeleteReadOlderThan(userID string, olderThan time.Time) error

	// Фабрики типовых уведомлений платформы
	CreateBookingRequestNotification(artistUserID, bookingID, clientName, serviceType string) error
	CreateBookingStatusNotification(clientUserID, bookingID string, status models.BookingStatus) error
	CreateReviewPendingNotification(artistUserID, reviewID string, rating int) error
	CreateReviewModeratedNotification(clientUserID, reviewID string, status models.ReviewStatus) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if notification.UserID == "" || notification.Title == "" {
		return ErrInvalidNotificationData
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Where("id = ?", id).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := r.db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

// MarkAsRead помечает уведомление прочитанным только для его владельца
func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) DeleteReadOlderThan(userID string, olderThan time.Time) error {
	return r.db.Where("user_id = ? AND is_read = ? AND created_at < ?", userID, true, olderThan).
		Delete(&models.Notification{}).Error
}

// --- Фабрики типовых уведомлений ---

func (r *NotificationRepositoryImpl) CreateBookingRequestNotification(artistUserID, bookingID, clientName, serviceType string) error {
	data, _ := json.Marshal(map[string]string{"booking_id": bookingID})
	return r.Create(&models.Notification{
		UserID:  artistUserID,
		Type:    models.NotificationTypeBooking,
		Title:   "New Booking Request",
		Message: fmt.Sprintf("%s requested a %s booking.", clientName, serviceType),
		Link:    "/artist-dashboard",
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateBookingStatusNotification(clientUserID, bookingID string, status models.BookingStatus) error {
	data, _ := json.Marshal(map[string]string{"booking_id": bookingID})
	return r.Create(&models.Notification{
		UserID:  clientUserID,
		Type:    models.NotificationTypeBooking,
		Title:   "Booking Update",
		Message: fmt.Sprintf("Your booking has been %s.", status),
		Link:    "/client-dashboard",
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateReviewPendingNotification(artistUserID, reviewID string, rating int) error {
	data, _ := json.Marshal(map[string]string{"review_id": reviewID})
	return r.Create(&models.Notification{
		UserID:  artistUserID,
		Type:    models.NotificationTypeReview,
		Title:   "New Review Pending",
		Message: fmt.Sprintf("You have received a new review (%d stars) that is pending approval.", rating),
		Link:    "/artist-dashboard",
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateReviewModeratedNotification(clientUserID, reviewID string, status models.ReviewStatus) error {
	data, _ := json.Marshal(map[string]string{"review_id": reviewID})
	return r.Create(&models.Notification{
		UserID:  clientUserID,
		Type:    models.NotificationTypeReview,
		Title:   "Review Moderated",
		Message: fmt.Sprintf("Your review has been %s.", status),
		Link:    "/client-dashboard",
		Data:    datatypes.JSON(data),
	})
}
