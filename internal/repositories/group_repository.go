package repositories

import (
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	CreateGroup(group *models.Group) error
	GetGroupByID(id uint) (*models.Group, error)
	GetGroups(search string) ([]models.Group, error)
	UpdateGroup(group *models.Group) error
	DeleteGroup(id uint) error

	CreateJoinRequest(groupID, userID uint) error
	DeleteJoinRequest(groupID, userID uint) error
	AcceptMember(groupID, userID uint) error
	DeleteMember(groupID, userID uint) error
	HasMember(groupID, userID uint) (bool, error)
	HasJoinRequest(groupID, userID uint) (bool, error)
	GetMemberIDs(groupID uint) ([]uint, error)
	GetJoinRequestIDs(groupID uint) ([]uint, error)

	GetJoinedGroups(userID uint) ([]models.Group, error)
	GetOwnGroups(userID uint) ([]models.Group, error)
	DeleteAllForUser(userID uint) error
}

// PostgresGroupRepository implements GroupRepository for PostgreSQL
type PostgresGroupRepository struct {
	db *gorm.DB
}

// NewPostgresGroupRepository creates a new PostgresGroupRepository
func NewPostgresGroupRepository(db *gorm.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

// CreateGroup creates a new group
func (r *PostgresGroupRepository) CreateGroup(group *models.Group) error {
	return r.db.Create(group).Error
}

// GetGroupByID retrieves a group by ID
func (r *PostgresGroupRepository) GetGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetGroups retrieves groups, optionally filtered by a case-insensitive
// name substring
func (r *PostgresGroupRepository) GetGroups(search string) ([]models.Group, error) {
	var groups []models.Group
	q := r.db.Order("created_at DESC")
	if search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if err := q.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// UpdateGroup updates an existing group
func (r *PostgresGroupRepository) UpdateGroup(group *models.Group) error {
	return r.db.Save(group).Error
}

// DeleteGroup deletes a group and its membership edges in one transaction.
// Post cascade is handled by the group service against the post store.
func (r *PostgresGroupRepository) DeleteGroup(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupJoinRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
}

// CreateJoinRequest records a pending join request
func (r *PostgresGroupRepository) CreateJoinRequest(groupID, userID uint) error {
	return r.db.Create(&models.GroupJoinRequest{GroupID: groupID, UserID: userID}).Error
}

// DeleteJoinRequest removes a pending join request
func (r *PostgresGroupRepository) DeleteJoinRequest(groupID, userID uint) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupJoinRequest{}).Error
}

// AcceptMember moves a user from the request table to the member table in
// one transaction, keeping the two sets disjoint.
func (r *PostgresGroupRepository) AcceptMember(groupID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("group_id = ? AND user_id = ?", groupID, userID).
			Delete(&models.GroupJoinRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&models.GroupMember{GroupID: groupID, UserID: userID}).Error
	})
}

// DeleteMember removes a membership edge
func (r *PostgresGroupRepository) DeleteMember(groupID, userID uint) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
}

// HasMember reports whether the user is a member of the group
func (r *PostgresGroupRepository) HasMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).Count(&count).Error
	return count > 0, err
}

// HasJoinRequest reports whether the user has a pending join request
func (r *PostgresGroupRepository) HasJoinRequest(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupJoinRequest{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).Count(&count).Error
	return count > 0, err
}

// GetMemberIDs retrieves the member user IDs of a group
func (r *PostgresGroupRepository) GetMemberIDs(groupID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Pluck("user_id", &ids).Error
	return ids, err
}

// GetJoinRequestIDs retrieves the pending requester user IDs of a group
func (r *PostgresGroupRepository) GetJoinRequestIDs(groupID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.GroupJoinRequest{}).Where("group_id = ?", groupID).Pluck("user_id", &ids).Error
	return ids, err
}

// GetJoinedGroups retrieves groups the user is a member of
func (r *PostgresGroupRepository) GetJoinedGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// GetOwnGroups retrieves groups the user administers
func (r *PostgresGroupRepository) GetOwnGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Where("admin_id = ?", userID).Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteAllForUser removes the user's membership and request edges. Groups
// the user administers are left in place.
func (r *PostgresGroupRepository) DeleteAllForUser(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.GroupJoinRequest{}).Error
	})
}
