package models

import "time"

// Friend request / friendship statuses. A single edge row represents both
// the pending request and, once accepted, the friendship itself.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// FriendRequest represents a directed edge between two users. There is at
// most one edge per pair regardless of direction.
type FriendRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index;uniqueIndex:idx_sender_receiver"`
	ReceiverID uint      `json:"receiver_id" gorm:"index;uniqueIndex:idx_sender_receiver"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Block represents a one-directional block edge. The blocked user is not
// notified and keeps no record of the edge.
type Block struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_blocked"`
	BlockedID uint      `json:"blocked_id" gorm:"index;uniqueIndex:idx_user_blocked"`
	CreatedAt time.Time `json:"created_at"`
}

// NotInterested marks content from the target user as unwanted in listings.
type NotInterested struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_not_interested"`
	TargetID  uint      `json:"target_id" gorm:"index;uniqueIndex:idx_user_not_interested"`
	CreatedAt time.Time `json:"created_at"`
}

// SendFriendRequestBody defines the request body for sending a friend request
type SendFriendRequestBody struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}

// RespondFriendRequestBody defines the request body for accepting or
// rejecting a pending friend request
type RespondFriendRequestBody struct {
	SenderID uint   `json:"sender_id" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=accept reject"`
}

// PendingFriendRequest pairs a pending edge with the sender's user record.
type PendingFriendRequest struct {
	FriendRequest
	Sender User `json:"sender"`
}
