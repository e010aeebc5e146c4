package repository

import (
	"context"
	"errors"

	"gather/internal/models"

	"gorm.io/gorm"
)

// GroupPostRepository is the content store for group-scoped posts.
type GroupPostRepository interface {
	Create(ctx context.Context, post *models.GroupPost) error
	GetByID(ctx context.Context, id uint) (*models.GroupPost, error)
	ListByGroup(ctx context.Context, groupID uint) ([]models.GroupPost, error)
	Delete(ctx context.Context, id uint) error
}

// groupPostRepository implements GroupPostRepository
type groupPostRepository struct {
	db *gorm.DB
}

// NewGroupPostRepository creates a new group post repository
func NewGroupPostRepository(db *gorm.DB) GroupPostRepository {
	return &groupPostRepository{db: db}
}

func (r *groupPostRepository) Create(ctx context.Context, post *models.GroupPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupPostRepository) GetByID(ctx context.Context, id uint) (*models.GroupPost, error) {
	var post models.GroupPost
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *groupPostRepository) ListByGroup(ctx context.Context, groupID uint) ([]models.GroupPost, error) {
	var posts []models.GroupPost
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *groupPostRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.GroupPost{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Group post", id)
	}
	return nil
}
