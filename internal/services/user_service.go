package services

import (
	"context"
	"errors"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/repositories"
	"gorm.io/gorm"
)

// UserService handles profile operations. Every call receives the resolved
// caller explicitly; there is no ambient request state below the handlers.
type UserService struct {
	userRepository       repositories.UserRepository
	friendshipRepository repositories.FriendshipRepository
	groupRepository      repositories.GroupRepository
	postRepository       repositories.PostRepository
	notificationRepo     repositories.NotificationRepository
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	friendshipRepo repositories.FriendshipRepository,
	groupRepo repositories.GroupRepository,
	postRepo repositories.PostRepository,
	notificationRepo repositories.NotificationRepository,
) *UserService {
	return &UserService{
		userRepository:       userRepo,
		friendshipRepository: friendshipRepo,
		groupRepository:      groupRepo,
		postRepository:       postRepo,
		notificationRepo:     notificationRepo,
	}
}

// GetUserByID retrieves a user's profile
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepository.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the caller's profile fields. Empty fields are left
// unchanged; avatarURL and coverURL are set when an upload produced them.
func (s *UserService) UpdateProfile(caller *models.User, req models.UpdateUserRequest, avatarURL, coverURL string) (*models.User, error) {
	if req.Name != "" {
		caller.Name = req.Name
	}
	if req.Bio != "" {
		caller.Bio = req.Bio
	}
	if req.DateOfBirth != "" {
		caller.DateOfBirth = req.DateOfBirth
	}
	if req.Hometown != "" {
		caller.Hometown = req.Hometown
	}
	if avatarURL != "" {
		caller.ProfileURL = avatarURL
	}
	if coverURL != "" {
		caller.CoverURL = coverURL
	}
	if err := s.userRepository.UpdateUser(caller); err != nil {
		return nil, err
	}
	return caller, nil
}

// SearchUsers lists users matching an optional name substring. Users on
// either side of a block edge with the caller, and users the caller marked
// not interested, are filtered out uniformly.
func (s *UserService) SearchUsers(caller *models.User, search string) ([]models.User, error) {
	exclude, err := s.friendshipRepository.GetBlockRelatedIDs(caller.ID)
	if err != nil {
		return nil, err
	}
	notInterested, err := s.friendshipRepository.GetNotInterestedIDs(caller.ID)
	if err != nil {
		return nil, err
	}
	exclude = append(exclude, notInterested...)
	return s.userRepository.GetUsers(search, exclude)
}

// DeleteAccount deletes the caller's account and everything hanging off it:
// owned posts, relationship edges, group edges and notifications.
func (s *UserService) DeleteAccount(ctx context.Context, caller *models.User) error {
	if err := s.postRepository.DeletePostsByUser(ctx, caller.ID); err != nil {
		return err
	}
	if err := s.friendshipRepository.DeleteAllForUser(caller.ID); err != nil {
		return err
	}
	if err := s.groupRepository.DeleteAllForUser(caller.ID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteByRecipient(caller.ID); err != nil {
		return err
	}
	return s.userRepository.DeleteUser(caller.ID)
}
