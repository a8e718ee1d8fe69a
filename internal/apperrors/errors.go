package apperrors

import (
	"errors"
	"net/http"
)

// Error is a domain error carried up to the HTTP boundary unchanged.
// Code mirrors the HTTP status the error maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Well-known domain errors.
var (
	ErrUserNotFound      = &Error{Code: http.StatusNotFound, Message: "User not found"}
	ErrUserAlreadyExists = &Error{Code: http.StatusConflict, Message: "User already exists"}
	ErrNotAuthenticated  = &Error{Code: http.StatusUnauthorized, Message: "You are not authenticated"}
	ErrWrongPassword     = &Error{Code: http.StatusBadRequest, Message: "Wrong password"}

	ErrPostNotFound = &Error{Code: http.StatusNotFound, Message: "Post not found"}
	ErrNotPostOwner = &Error{Code: http.StatusForbidden, Message: "You are not owner of this post"}

	ErrGroupNotFound = &Error{Code: http.StatusNotFound, Message: "Group not found"}
	ErrNotGroupAdmin = &Error{Code: http.StatusForbidden, Message: "You are not admin of this group"}

	ErrNotificationNotFound = &Error{Code: http.StatusNotFound, Message: "Notification not found"}
)

// NewValidation wraps a validation failure message as a 400 error.
func NewValidation(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// NewBadRequest wraps a malformed-input message as a 400 error.
func NewBadRequest(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// NewConflict wraps a state-conflict message as a 409 error.
func NewConflict(message string) *Error {
	return &Error{Code: http.StatusConflict, Message: message}
}

// As unwraps err into a *Error if it is one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
