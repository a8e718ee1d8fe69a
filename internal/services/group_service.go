package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/repositories"
	"gorm.io/gorm"
)

// GroupDetail bundles a group with its resolved member and requester lists.
type GroupDetail struct {
	models.Group
	Members          []models.User `json:"members"`
	RequestedMembers []models.User `json:"requested_members"`
}

// GroupService handles group lifecycle and membership. All mutating
// operations re-check the admin identity against the caller; a mismatch is
// a Forbidden error, never a silent no-op.
type GroupService struct {
	groupRepository repositories.GroupRepository
	userRepository  repositories.UserRepository
	postRepository  repositories.PostRepository
	notifier        Notifier
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	notifier Notifier,
) *GroupService {
	return &GroupService{
		groupRepository: groupRepo,
		userRepository:  userRepo,
		postRepository:  postRepo,
		notifier:        notifier,
	}
}

func (s *GroupService) getGroup(id uint) (*models.Group, error) {
	group, err := s.groupRepository.GetGroupByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *GroupService) getGroupAsAdmin(caller *models.User, id uint) (*models.Group, error) {
	group, err := s.getGroup(id)
	if err != nil {
		return nil, err
	}
	if group.AdminID != caller.ID {
		return nil, apperrors.ErrNotGroupAdmin
	}
	return group, nil
}

// Create creates a group with the caller as its immutable admin
func (s *GroupService) Create(caller *models.User, req models.CreateGroupRequest, profileURL string) (*models.Group, error) {
	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		ProfileURL:  profileURL,
		AdminID:     caller.ID,
	}
	if err := s.groupRepository.CreateGroup(group); err != nil {
		return nil, err
	}
	return group, nil
}

// List retrieves groups with an optional name filter
func (s *GroupService) List(search string) ([]models.Group, error) {
	return s.groupRepository.GetGroups(search)
}

// GetByID retrieves a group with its member and requester records
func (s *GroupService) GetByID(id uint) (*GroupDetail, error) {
	group, err := s.getGroup(id)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.groupRepository.GetMemberIDs(id)
	if err != nil {
		return nil, err
	}
	members, err := s.userRepository.GetUsersByIDs(memberIDs)
	if err != nil {
		return nil, err
	}

	requestIDs, err := s.groupRepository.GetJoinRequestIDs(id)
	if err != nil {
		return nil, err
	}
	requesters, err := s.userRepository.GetUsersByIDs(requestIDs)
	if err != nil {
		return nil, err
	}

	return &GroupDetail{Group: *group, Members: members, RequestedMembers: requesters}, nil
}

// Update updates a group's name, description or profile image. Admin only.
func (s *GroupService) Update(caller *models.User, id uint, req models.UpdateGroupRequest, profileURL string) (*models.Group, error) {
	group, err := s.getGroupAsAdmin(caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Description != "" {
		group.Description = req.Description
	}
	if profileURL != "" {
		group.ProfileURL = profileURL
	}
	if err := s.groupRepository.UpdateGroup(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete deletes a group and cascades deletion of its posts. Admin only.
func (s *GroupService) Delete(ctx context.Context, caller *models.User, id uint) error {
	if _, err := s.getGroupAsAdmin(caller, id); err != nil {
		return err
	}
	if err := s.postRepository.DeletePostsByGroup(ctx, id); err != nil {
		return err
	}
	return s.groupRepository.DeleteGroup(id)
}

// RequestJoin records the caller's request to join a group
func (s *GroupService) RequestJoin(caller *models.User, groupID uint) error {
	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	if group.AdminID == caller.ID {
		return apperrors.NewConflict("You are the admin of this group")
	}

	isMember, err := s.groupRepository.HasMember(groupID, caller.ID)
	if err != nil {
		return err
	}
	if isMember {
		return apperrors.NewConflict("You are already a member of this group")
	}

	requested, err := s.groupRepository.HasJoinRequest(groupID, caller.ID)
	if err != nil {
		return err
	}
	if requested {
		return apperrors.NewConflict("You have already requested to join this group")
	}

	return s.groupRepository.CreateJoinRequest(groupID, caller.ID)
}

// AcceptMember moves a requester into the member list and notifies them.
// Admin only.
func (s *GroupService) AcceptMember(caller *models.User, groupID, userID uint) error {
	group, err := s.getGroupAsAdmin(caller, groupID)
	if err != nil {
		return err
	}

	if err := s.groupRepository.AcceptMember(groupID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewBadRequest("No pending join request from this user")
		}
		return err
	}

	s.notifier.Notify(userID, fmt.Sprintf("Your request to join %s has been accepted.", group.Name))
	return nil
}

// RejectRequest drops a pending join request without notifying. Admin only.
func (s *GroupService) RejectRequest(caller *models.User, groupID, userID uint) error {
	if _, err := s.getGroupAsAdmin(caller, groupID); err != nil {
		return err
	}
	return s.groupRepository.DeleteJoinRequest(groupID, userID)
}

// RemoveMember removes a member from the group. Admin only.
func (s *GroupService) RemoveMember(caller *models.User, groupID, userID uint) error {
	if _, err := s.getGroupAsAdmin(caller, groupID); err != nil {
		return err
	}
	return s.groupRepository.DeleteMember(groupID, userID)
}

// ListJoined retrieves the groups the caller is a member of
func (s *GroupService) ListJoined(caller *models.User) ([]models.Group, error) {
	return s.groupRepository.GetJoinedGroups(caller.ID)
}

// ListOwn retrieves the groups the caller administers
func (s *GroupService) ListOwn(caller *models.User) ([]models.Group, error) {
	return s.groupRepository.GetOwnGroups(caller.ID)
}
