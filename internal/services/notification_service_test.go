package services

import (
	"testing"
	"time"

	"artbook_backend/internal/models"
	"artbook_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotification(t *testing.T, db *gorm.DB, userID, notifType, title string, read bool) *models.Notification {
	t.Helper()
	n := &models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		IsRead: read,
	}
	if read {
		now := time.Now()
		n.ReadAt = &now
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestListNotifications(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repositories.NewNotificationRepository(db))
	user := seedUser(t, db, "user@example.com", "User", models.UserRoleClient)
	other := seedUser(t, db, "other@example.com", "Other", models.UserRoleClient)

	seedNotification(t, db, user.ID, "booking", "New booking request", false)
	seedNotification(t, db, user.ID, "review", "Review approved", true)
	seedNotification(t, db, other.ID, "booking", "Not yours", false)

	list, err := svc.ListNotifications(user.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, int64(1), list.UnreadCount)

	unread, err := svc.ListNotifications(user.ID, repositories.NotificationCriteria{UnreadOnly: true})
	require.NoError(t, err)
	require.Equal(t, int64(1), unread.Total)
	assert.Equal(t, "New booking request", unread.Notifications[0].Title)

	byType, err := svc.ListNotifications(user.ID, repositories.NotificationCriteria{Type: "review"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), byType.Total)
}

func TestMarkAsRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repositories.NewNotificationRepository(db))
	user := seedUser(t, db, "user@example.com", "User", models.UserRoleClient)
	other := seedUser(t, db, "other@example.com", "Other", models.UserRoleClient)

	n := seedNotification(t, db, user.ID, "booking", "New booking request", false)

	// Чужое уведомление пометить нельзя
	assert.Error(t, svc.MarkAsRead(other.ID, n.ID))

	require.NoError(t, svc.MarkAsRead(user.ID, n.ID))
	count, err := svc.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count.UnreadCount)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	assert.NotNil(t, stored.ReadAt)
}

func TestMarkAllAsRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repositories.NewNotificationRepository(db))
	user := seedUser(t, db, "user@example.com", "User", models.UserRoleClient)

	seedNotification(t, db, user.ID, "booking", "One", false)
	seedNotification(t, db, user.ID, "review", "Two", false)

	require.NoError(t, svc.MarkAllAsRead(user.ID))

	count, err := svc.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count.UnreadCount)
}

func TestCleanupRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repositories.NewNotificationRepository(db))
	user := seedUser(t, db, "user@example.com", "User", models.UserRoleClient)

	old := seedNotification(t, db, user.ID, "system", "Old and read", true)
	require.NoError(t, db.Model(old).Update("created_at", time.Now().Add(-60*24*time.Hour)).Error)
	seedNotification(t, db, user.ID, "system", "Recent and read", true)
	seedNotification(t, db, user.ID, "system", "Old but unread", false)

	require.NoError(t, svc.CleanupRead(user.ID, 30*24*time.Hour))

	list, err := svc.ListNotifications(user.ID, repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	for _, n := range list.Notifications {
		assert.NotEqual(t, "Old and read", n.Title)
	}
}
