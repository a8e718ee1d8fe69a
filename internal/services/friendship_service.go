package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/repositories"
	"gorm.io/gorm"
)

// Friend request response actions.
const (
	FriendActionAccept = "accept"
	FriendActionReject = "reject"
)

// FriendshipService drives the friendship state machine:
// NONE -> REQUESTED -> FRIENDS, with BLOCKED reachable from any state.
type FriendshipService struct {
	friendshipRepository repositories.FriendshipRepository
	userRepository       repositories.UserRepository
	notifier             Notifier
}

// NewFriendshipService creates a new FriendshipService
func NewFriendshipService(
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) *FriendshipService {
	return &FriendshipService{
		friendshipRepository: friendshipRepo,
		userRepository:       userRepo,
		notifier:             notifier,
	}
}

func (s *FriendshipService) getUser(id uint) (*models.User, error) {
	user, err := s.userRepository.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SendRequest creates a pending edge from the caller to the receiver and
// notifies the receiver. A block in either direction forbids the request.
func (s *FriendshipService) SendRequest(caller *models.User, receiverID uint) (*models.FriendRequest, error) {
	if caller.ID == receiverID {
		return nil, apperrors.NewBadRequest("Cannot send a friend request to yourself")
	}
	if _, err := s.getUser(receiverID); err != nil {
		return nil, err
	}

	for _, pair := range [][2]uint{{caller.ID, receiverID}, {receiverID, caller.ID}} {
		blocked, err := s.friendshipRepository.HasBlock(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, apperrors.ErrUserNotFound
		}
	}

	edge, err := s.friendshipRepository.GetEdge(caller.ID, receiverID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if edge != nil {
		switch edge.Status {
		case models.FriendStatusAccepted:
			return nil, apperrors.NewConflict("Users are already friends")
		default:
			return nil, apperrors.NewConflict("A pending friend request already exists")
		}
	}

	created, err := s.friendshipRepository.CreateRequest(caller.ID, receiverID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(receiverID, fmt.Sprintf("%s sent you a friend request.", caller.Name))
	return created, nil
}

// Respond accepts or rejects a pending request addressed to the caller.
// Accepting makes both users friends and notifies the sender; rejecting
// silently drops the request.
func (s *FriendshipService) Respond(caller *models.User, senderID uint, action string) error {
	sender, err := s.getUser(senderID)
	if err != nil {
		return err
	}

	edge, err := s.friendshipRepository.GetEdge(senderID, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewBadRequest("No pending friend request from this user")
		}
		return err
	}
	if edge.Status != models.FriendStatusPending || edge.SenderID != senderID || edge.ReceiverID != caller.ID {
		return apperrors.NewBadRequest("No pending friend request from this user")
	}

	if action == FriendActionReject {
		return s.friendshipRepository.DeleteEdge(senderID, caller.ID)
	}

	if err := s.friendshipRepository.AcceptRequest(senderID, caller.ID); err != nil {
		return err
	}
	s.notifier.Notify(sender.ID, fmt.Sprintf("%s accepted your friend request.", caller.Name))
	return nil
}

// ListRequests retrieves the caller's pending incoming requests with their
// sender records, newest first.
func (s *FriendshipService) ListRequests(caller *models.User) ([]models.PendingFriendRequest, error) {
	pending, err := s.friendshipRepository.GetPendingForReceiver(caller.ID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uint, 0, len(pending))
	for _, p := range pending {
		senderIDs = append(senderIDs, p.SenderID)
	}
	senders, err := s.userRepository.GetUsersByIDs(senderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(senders))
	for _, u := range senders {
		byID[u.ID] = u
	}

	result := make([]models.PendingFriendRequest, 0, len(pending))
	for _, p := range pending {
		result = append(result, models.PendingFriendRequest{FriendRequest: p, Sender: byID[p.SenderID]})
	}
	return result, nil
}

// ListFriends retrieves the caller's friends, optionally filtered by a
// name substring.
func (s *FriendshipService) ListFriends(caller *models.User, search string) ([]models.User, error) {
	ids, err := s.friendshipRepository.GetFriendIDs(caller.ID)
	if err != nil {
		return nil, err
	}
	friends, err := s.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return friends, nil
	}

	filtered := make([]models.User, 0, len(friends))
	for _, f := range friends {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(search)) {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}

// MutualFriends retrieves the intersection of the caller's and the other
// user's friend sets.
func (s *FriendshipService) MutualFriends(caller *models.User, otherID uint) ([]models.User, error) {
	if _, err := s.getUser(otherID); err != nil {
		return nil, err
	}

	callerIDs, err := s.friendshipRepository.GetFriendIDs(caller.ID)
	if err != nil {
		return nil, err
	}
	otherIDs, err := s.friendshipRepository.GetFriendIDs(otherID)
	if err != nil {
		return nil, err
	}

	inCaller := make(map[uint]bool, len(callerIDs))
	for _, id := range callerIDs {
		inCaller[id] = true
	}
	mutual := make([]uint, 0)
	for _, id := range otherIDs {
		if inCaller[id] {
			mutual = append(mutual, id)
		}
	}
	return s.userRepository.GetUsersByIDs(mutual)
}

// Unfriend removes an accepted friendship. Unfriending someone who is not a
// friend is a no-op.
func (s *FriendshipService) Unfriend(caller *models.User, friendID uint) error {
	edge, err := s.friendshipRepository.GetEdge(caller.ID, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if edge.Status != models.FriendStatusAccepted {
		return nil
	}
	return s.friendshipRepository.DeleteEdge(caller.ID, friendID)
}

// Block removes any friendship with the target in both directions and
// records the block. The target is not notified.
func (s *FriendshipService) Block(caller *models.User, targetID uint) error {
	if caller.ID == targetID {
		return apperrors.NewBadRequest("Cannot block yourself")
	}
	if _, err := s.getUser(targetID); err != nil {
		return err
	}
	return s.friendshipRepository.BlockUser(caller.ID, targetID)
}

// Unblock removes the block edge, returning the pair to the NONE state.
func (s *FriendshipService) Unblock(caller *models.User, targetID uint) error {
	return s.friendshipRepository.UnblockUser(caller.ID, targetID)
}

// ListBlocked retrieves the users the caller has blocked
func (s *FriendshipService) ListBlocked(caller *models.User) ([]models.User, error) {
	ids, err := s.friendshipRepository.GetBlockedIDs(caller.ID)
	if err != nil {
		return nil, err
	}
	return s.userRepository.GetUsersByIDs(ids)
}

// ListNotInterested retrieves the users the caller marked not interested
func (s *FriendshipService) ListNotInterested(caller *models.User) ([]models.User, error) {
	ids, err := s.friendshipRepository.GetNotInterestedIDs(caller.ID)
	if err != nil {
		return nil, err
	}
	return s.userRepository.GetUsersByIDs(ids)
}

// MarkNotInterested hides the target user from the caller's listings
func (s *FriendshipService) MarkNotInterested(caller *models.User, targetID uint) error {
	if caller.ID == targetID {
		return apperrors.NewBadRequest("Cannot mark yourself as not interested")
	}
	if _, err := s.getUser(targetID); err != nil {
		return err
	}
	return s.friendshipRepository.MarkNotInterested(caller.ID, targetID)
}
