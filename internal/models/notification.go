package models

import "time"

// Notification represents a user notification (PostgreSQL). Notifications
// are created as side effects of social actions and are only ever marked
// read, never deleted by users.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
