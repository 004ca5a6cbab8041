// internal/services/notification_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

// NotificationService persists notifications and pushes them over the
// realtime hub. Persistence and push are independent: a user with no
// open connection still sees the notification on next fetch.
type NotificationService struct {
	db          *gorm.DB
	broadcaster Broadcaster
	ownerEmail  string
}

func NewNotificationService(db *gorm.DB, broadcaster Broadcaster, ownerEmail string) *NotificationService {
	return &NotificationService{
		db:          db,
		broadcaster: broadcaster,
		ownerEmail:  ownerEmail,
	}
}

// Create stores a notification and pushes it to the target user's open
// connections.
func (s *NotificationService) Create(userID, title, message string, notifType models.NotificationType, data models.JSONB) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Data:    data,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	s.broadcaster.SendToUser(userID, map[string]interface{}{
		"type":         "notification",
		"notification": notification,
	})

	return notification, nil
}

// NotifyOwner targets the primary owner account. It is a no-op when the
// owner has never signed in.
func (s *NotificationService) NotifyOwner(title, message string, notifType models.NotificationType, data models.JSONB) error {
	var owner models.User
	if err := s.db.Where("email = ?", s.ownerEmail).First(&owner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("looking up owner: %w", err)
	}
	_, err := s.Create(owner.ID, title, message, notifType, data)
	return err
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks a single notification read. Notifications belong to
// their user; a mismatched id is not found.
func (s *NotificationService) MarkRead(userID, notificationID string) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("marking notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification for the user read.
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
