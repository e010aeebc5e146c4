package repository

import (
	"context"

	"gather/internal/models"

	"gorm.io/gorm"
)

// BlockRepository is the relationship store for user blocking edges.
type BlockRepository interface {
	Create(ctx context.Context, block *models.UserBlock) error
	Delete(ctx context.Context, blockerID, blockedID uint) error
	Exists(ctx context.Context, blockerID, blockedID uint) (bool, error)
	ExistsBetween(ctx context.Context, userID1, userID2 uint) (bool, error)
	ListBlocked(ctx context.Context, blockerID uint) ([]models.User, error)
	BlockedPeerIDs(ctx context.Context, userID uint) ([]uint, error)
}

// blockRepository implements BlockRepository
type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, block *models.UserBlock) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		if isDuplicateKey(err) {
			return models.NewConflictError("User is already blocked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID uint) error {
	result := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.UserBlock{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Block", blockedID)
	}
	return nil
}

func (r *blockRepository) Exists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserBlock{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ExistsBetween reports whether a block edge exists in either direction.
// Visibility treats blocking as symmetric.
func (r *blockRepository) ExistsBetween(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userID1, userID2, userID2, userID1).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *blockRepository) ListBlocked(ctx context.Context, blockerID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN user_blocks ub ON ub.blocked_id = users.id").
		Where("ub.blocker_id = ?", blockerID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// BlockedPeerIDs returns every user id with a block edge to or from userID.
// The visibility resolver fetches this fresh on every read so a block takes
// effect on the very next resolve call.
func (r *blockRepository) BlockedPeerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var blocked []uint
	if err := r.db.WithContext(ctx).
		Model(&models.UserBlock{}).
		Where("blocker_id = ?", userID).
		Pluck("blocked_id", &blocked).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var blockers []uint
	if err := r.db.WithContext(ctx).
		Model(&models.UserBlock{}).
		Where("blocked_id = ?", userID).
		Pluck("blocker_id", &blockers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return append(blocked, blockers...), nil
}
