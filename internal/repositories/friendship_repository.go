package repositories

import (
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship, block and
// not-interested edge operations.
type FriendshipRepository interface {
	GetEdge(userA, userB uint) (*models.FriendRequest, error)
	CreateRequest(senderID, receiverID uint) (*models.FriendRequest, error)
	AcceptRequest(senderID, receiverID uint) error
	DeleteEdge(userA, userB uint) error
	GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error)
	GetFriendIDs(userID uint) ([]uint, error)

	BlockUser(userID, blockedID uint) error
	UnblockUser(userID, blockedID uint) error
	HasBlock(userID, blockedID uint) (bool, error)
	GetBlockedIDs(userID uint) ([]uint, error)
	GetBlockRelatedIDs(userID uint) ([]uint, error)

	MarkNotInterested(userID, targetID uint) error
	GetNotInterestedIDs(userID uint) ([]uint, error)

	DeleteAllForUser(userID uint) error
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// GetEdge retrieves the friend edge between two users in either direction
func (r *PostgresFriendshipRepository) GetEdge(userA, userB uint) (*models.FriendRequest, error) {
	var edge models.FriendRequest
	err := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA).First(&edge).Error
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// CreateRequest creates a pending friend edge from sender to receiver
func (r *PostgresFriendshipRepository) CreateRequest(senderID, receiverID uint) (*models.FriendRequest, error) {
	edge := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendStatusPending,
	}
	if err := r.db.Create(edge).Error; err != nil {
		return nil, err
	}
	return edge, nil
}

// AcceptRequest flips a pending edge to accepted
func (r *PostgresFriendshipRepository) AcceptRequest(senderID, receiverID uint) error {
	return r.db.Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.FriendStatusPending).
		Update("status", models.FriendStatusAccepted).Error
}

// DeleteEdge removes the friend edge between two users regardless of
// direction or status. Deleting a missing edge is not an error.
func (r *PostgresFriendshipRepository) DeleteEdge(userA, userB uint) error {
	return r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA).Delete(&models.FriendRequest{}).Error
}

// GetPendingForReceiver retrieves pending incoming requests, newest first
func (r *PostgresFriendshipRepository) GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("receiver_id = ? AND status = ?", receiverID, models.FriendStatusPending).
		Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetFriendIDs retrieves the IDs of all accepted friends of a user
func (r *PostgresFriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var edges []models.FriendRequest
	err := r.db.Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
		userID, userID, models.FriendStatusAccepted).Find(&edges).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		if e.SenderID == userID {
			ids = append(ids, e.ReceiverID)
		} else {
			ids = append(ids, e.SenderID)
		}
	}
	return ids, nil
}

// BlockUser removes any friend edge between the two users and records the
// block, in one transaction.
func (r *PostgresFriendshipRepository) BlockUser(userID, blockedID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, blockedID, blockedID, userID).Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		var existing models.Block
		err := tx.Where("user_id = ? AND blocked_id = ?", userID, blockedID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&models.Block{UserID: userID, BlockedID: blockedID}).Error
		}
		return err
	})
}

// UnblockUser removes the block edge. Unblocking a user who was never
// blocked is not an error.
func (r *PostgresFriendshipRepository) UnblockUser(userID, blockedID uint) error {
	return r.db.Where("user_id = ? AND blocked_id = ?", userID, blockedID).Delete(&models.Block{}).Error
}

// HasBlock reports whether userID has blocked blockedID
func (r *PostgresFriendshipRepository) HasBlock(userID, blockedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Block{}).
		Where("user_id = ? AND blocked_id = ?", userID, blockedID).Count(&count).Error
	return count > 0, err
}

// GetBlockedIDs retrieves the IDs the user has blocked
func (r *PostgresFriendshipRepository) GetBlockedIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Block{}).Where("user_id = ?", userID).Pluck("blocked_id", &ids).Error
	return ids, err
}

// GetBlockRelatedIDs retrieves every ID on either side of a block edge with
// the user. Listings filter these out uniformly.
func (r *PostgresFriendshipRepository) GetBlockRelatedIDs(userID uint) ([]uint, error) {
	var blocked []uint
	if err := r.db.Model(&models.Block{}).Where("user_id = ?", userID).Pluck("blocked_id", &blocked).Error; err != nil {
		return nil, err
	}
	var blockers []uint
	if err := r.db.Model(&models.Block{}).Where("blocked_id = ?", userID).Pluck("user_id", &blockers).Error; err != nil {
		return nil, err
	}
	return append(blocked, blockers...), nil
}

// MarkNotInterested records a not-interested edge, idempotently
func (r *PostgresFriendshipRepository) MarkNotInterested(userID, targetID uint) error {
	var existing models.NotInterested
	err := r.db.Where("user_id = ? AND target_id = ?", userID, targetID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&models.NotInterested{UserID: userID, TargetID: targetID}).Error
	}
	return err
}

// GetNotInterestedIDs retrieves the IDs the user marked not interested
func (r *PostgresFriendshipRepository) GetNotInterestedIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.NotInterested{}).Where("user_id = ?", userID).Pluck("target_id", &ids).Error
	return ids, err
}

// DeleteAllForUser removes every relationship edge touching the user.
// Called when the account is deleted.
func (r *PostgresFriendshipRepository) DeleteAllForUser(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR blocked_id = ?", userID, userID).
			Delete(&models.Block{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? OR target_id = ?", userID, userID).
			Delete(&models.NotInterested{}).Error
	})
}
