package services

import (
	"errors"
	"log"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/repositories"
	"gorm.io/gorm"
)

// Notifier is the side-effect interface the other services emit through.
type Notifier interface {
	Notify(recipientID uint, message string)
}

// NotificationService handles notification creation and retrieval
type NotificationService struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepository: notificationRepo}
}

// Notify records a notification for a user. Fire-and-forget: a failure here
// must never fail the action that triggered it, so it is only logged.
func (s *NotificationService) Notify(recipientID uint, message string) {
	n := &models.Notification{
		RecipientID: recipientID,
		Message:     message,
	}
	if err := s.notificationRepository.Create(n); err != nil {
		log.Printf("failed to create notification for user %d: %v", recipientID, err)
	}
}

// ListForUser retrieves the caller's notifications, newest first, along
// with the unread count.
func (s *NotificationService) ListForUser(caller *models.User) ([]models.Notification, int64, error) {
	notifications, err := s.notificationRepository.GetByRecipient(caller.ID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notificationRepository.GetUnreadCount(caller.ID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead marks one of the caller's notifications as read. Marking an
// already-read notification succeeds without effect.
func (s *NotificationService) MarkRead(caller *models.User, id uint) error {
	n, err := s.notificationRepository.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return err
	}
	if n.RecipientID != caller.ID {
		return apperrors.ErrNotificationNotFound
	}
	return s.notificationRepository.MarkAsRead(id)
}

// MarkAllRead marks every notification of the caller as read
func (s *NotificationService) MarkAllRead(caller *models.User) error {
	return s.notificationRepository.MarkAllAsRead(caller.ID)
}
