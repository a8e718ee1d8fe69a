package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents an account stored in PostgreSQL. Rows are hard-deleted:
// account removal cascades everything itself, and keeping soft-deleted rows
// would pin the unique email index against re-registration.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	ProfileURL  string    `json:"profile_url,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Hometown    string    `json:"hometown,omitempty"`
	FirebaseUID *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID, NULL for local accounts
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RegisterRequest defines the request body for registering a local account
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=500"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Hometown    string `json:"hometown,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest defines the request body for local authentication
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateUserRequest defines the request body for updating profile fields.
// Arrives as JSON or as multipart form fields alongside avatar/cover files.
type UpdateUserRequest struct {
	Name        string `json:"name,omitempty" form:"name" validate:"omitempty,min=2,max=50"`
	Bio         string `json:"bio,omitempty" form:"bio" validate:"omitempty,max=500"`
	DateOfBirth string `json:"date_of_birth,omitempty" form:"date_of_birth"`
	Hometown    string `json:"hometown,omitempty" form:"hometown" validate:"omitempty,max=100"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
