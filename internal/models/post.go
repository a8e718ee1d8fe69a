package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostKind discriminates the post variants stored in a single collection.
type PostKind string

const (
	PostKindNormal PostKind = "NORMAL"
	PostKindShared PostKind = "SHARED"
	PostKindTagged PostKind = "TAGGED"
)

// LikeEntry records a user who liked a post.
type LikeEntry struct {
	UserID    uint      `json:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CommentEntry records a comment embedded in a post.
type CommentEntry struct {
	UserID    uint      `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Post represents a post stored in MongoDB. Shared and tagged posts live in
// the same collection, discriminated by Kind with kind-specific fields.
//
// LikesCount always equals len(LikedUsers); both are written in a single
// document update so they cannot drift.
type Post struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Kind       PostKind           `json:"kind" bson:"kind"`
	UserID     uint               `json:"user_id" bson:"user_id"`
	Body       string             `json:"body,omitempty" bson:"body,omitempty"`
	ImageURL   string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	GroupID    uint               `json:"group_id,omitempty" bson:"group_id,omitempty"`
	TagFriends []uint             `json:"tag_friends,omitempty" bson:"tag_friends,omitempty"`

	LikedUsers  []LikeEntry    `json:"liked_users" bson:"liked_users"`
	Comments    []CommentEntry `json:"comments" bson:"comments"`
	LikesCount  int            `json:"likes_count" bson:"likes_count"`
	SharesCount int            `json:"shares_count" bson:"shares_count"`

	// SHARED only: the post and owner this share points back to.
	OriginPostID  string `json:"origin_post_id,omitempty" bson:"origin_post_id,omitempty"`
	OriginOwnerID uint   `json:"origin_owner_id,omitempty" bson:"origin_owner_id,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post. The
// image arrives as a multipart field, not in this payload.
type CreatePostRequest struct {
	Body       string `json:"body,omitempty" form:"body" validate:"omitempty,max=5000"`
	GroupID    uint   `json:"group_id,omitempty" form:"group_id"`
	TagFriends []uint `json:"tag_friends,omitempty" form:"tag_friends" validate:"omitempty,dive,required"`
}

// UpdatePostRequest defines the request body for updating a post's body
type UpdatePostRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

// CommentPostRequest defines the request body for commenting on a post
type CommentPostRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
