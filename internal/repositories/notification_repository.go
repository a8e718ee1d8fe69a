package repositories

import (
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	GetByRecipient(recipientID uint) ([]models.Notification, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(id uint) error
	MarkAllAsRead(recipientID uint) error
	DeleteByRecipient(recipientID uint) error
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// Create inserts a notification
func (r *PostgresNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByID retrieves a notification by ID
func (r *PostgresNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByRecipient retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) GetByRecipient(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetUnreadCount counts unread notifications for a user
func (r *PostgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead marks a notification read. Marking an already-read
// notification is a no-op.
func (r *PostgresNotificationRepository) MarkAsRead(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

// MarkAllAsRead marks all of a user's notifications read
func (r *PostgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).Update("is_read", true).Error
}

// DeleteByRecipient removes all notifications targeting a user. Called when
// the account is deleted.
func (r *PostgresNotificationRepository) DeleteByRecipient(recipientID uint) error {
	return r.db.Where("recipient_id = ?", recipientID).Delete(&models.Notification{}).Error
}
