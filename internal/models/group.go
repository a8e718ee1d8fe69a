package models

import "time"

// Group represents a user group. The admin is the creating user and never
// changes.
type Group struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"index"`
	Description string    `json:"description,omitempty"`
	ProfileURL  string    `json:"profile_url,omitempty"`
	AdminID     uint      `json:"admin_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupMember represents an accepted membership edge.
type GroupMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GroupID   uint      `json:"group_id" gorm:"index;uniqueIndex:idx_group_member"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_group_member"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupJoinRequest represents a pending join request. A user is never in
// both the member and request tables for the same group.
type GroupJoinRequest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GroupID   uint      `json:"group_id" gorm:"index;uniqueIndex:idx_group_join_request"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_group_join_request"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateGroupRequest defines the request body for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" form:"description" validate:"omitempty,max=500"`
}

// UpdateGroupRequest defines the request body for updating a group
type UpdateGroupRequest struct {
	Name        string `json:"name,omitempty" form:"name" validate:"omitempty,min=2,max=100"`
	Description string `json:"description,omitempty" form:"description" validate:"omitempty,max=500"`
}

// GroupMemberBody identifies the member a group admin acts on
type GroupMemberBody struct {
	UserID uint `json:"user_id" validate:"required"`
}
