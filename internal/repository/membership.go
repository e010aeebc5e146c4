package repository

import (
	"context"
	"errors"

	"gather/internal/models"

	"gorm.io/gorm"
)

// MembershipRepository is the relationship store for group memberships and
// join requests. It holds no policy; the service layer decides who may call
// what. The check-then-act primitives (AcceptRequest, the RowsAffected
// checks on deletes) run as single atomic units so concurrent admins racing
// on the same request resolve to exactly one winner.
type MembershipRepository interface {
	GetMembership(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error)
	CreateMembership(ctx context.Context, membership *models.GroupMembership) error
	DeleteMembership(ctx context.Context, groupID, userID uint) error
	SetAdmin(ctx context.Context, groupID, userID uint, isAdmin bool) error
	ListGroupMembers(ctx context.Context, groupID uint) ([]models.GroupMembership, error)
	ListUserMemberships(ctx context.Context, userID uint) ([]models.GroupMembership, error)

	GetRequest(ctx context.Context, groupID, userID uint) (*models.GroupRequest, error)
	CreateRequest(ctx context.Context, request *models.GroupRequest) error
	DeleteRequest(ctx context.Context, groupID, userID uint) error
	ListGroupRequests(ctx context.Context, groupID uint) ([]models.GroupRequest, error)

	AcceptRequest(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error)
}

// membershipRepository implements MembershipRepository
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetMembership(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error) {
	var membership models.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no membership for the pair
		}
		return nil, models.NewInternalError(err)
	}
	return &membership, nil
}

func (r *membershipRepository) CreateMembership(ctx context.Context, membership *models.GroupMembership) error {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		if isDuplicateKey(err) {
			return models.NewConflictError("User is already a member of this group")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *membershipRepository) DeleteMembership(ctx context.Context, groupID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMembership{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Membership", userID)
	}
	return nil
}

func (r *membershipRepository) SetAdmin(ctx context.Context, groupID, userID uint, isAdmin bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("is_admin", isAdmin)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Membership", userID)
	}
	return nil
}

func (r *membershipRepository) ListGroupMembers(ctx context.Context, groupID uint) ([]models.GroupMembership, error) {
	var memberships []models.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("User").
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return memberships, nil
}

func (r *membershipRepository) ListUserMemberships(ctx context.Context, userID uint) ([]models.GroupMembership, error) {
	var memberships []models.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Group").
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return memberships, nil
}

func (r *membershipRepository) GetRequest(ctx context.Context, groupID, userID uint) (*models.GroupRequest, error) {
	var request models.GroupRequest
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no pending request for the pair
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *membershipRepository) CreateRequest(ctx context.Context, request *models.GroupRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if isDuplicateKey(err) {
			return models.NewConflictError("Join request already pending")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *membershipRepository) DeleteRequest(ctx context.Context, groupID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupRequest{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Join request", userID)
	}
	return nil
}

func (r *membershipRepository) ListGroupRequests(ctx context.Context, groupID uint) ([]models.GroupRequest, error) {
	var requests []models.GroupRequest
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("User").
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// AcceptRequest deletes the pending request and inserts a plain membership
// as one transaction. The RowsAffected check on the delete is the race
// arbiter: of two admins accepting (or an accept racing a reject), exactly
// one caller deletes the row and the other observes NotFound with no state
// change.
func (r *membershipRepository) AcceptRequest(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error) {
	membership := &models.GroupMembership{
		GroupID: groupID,
		UserID:  userID,
		IsAdmin: false,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("group_id = ? AND user_id = ?", groupID, userID).
			Delete(&models.GroupRequest{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(membership).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Join request", userID)
		}
		if isDuplicateKey(err) {
			return nil, models.NewConflictError("User is already a member of this group")
		}
		return nil, models.NewInternalError(err)
	}
	return membership, nil
}
