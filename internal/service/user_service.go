package service

import (
	"context"

	"gather/internal/models"
	"gather/internal/repository"
)

// UserService provides user lookups and the blocking edges between users.
// Blocking hides content in both directions; it does not hide profiles.
type UserService struct {
	userRepo  repository.UserRepository
	blockRepo repository.BlockRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, blockRepo repository.BlockRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blockRepo: blockRepo,
	}
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns a page of users.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SearchUsers returns users matching the query by username or name.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.userRepo.Search(ctx, query, limit, offset)
}

// BlockUser creates a blocking edge from the actor to the target.
func (s *UserService) BlockUser(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("Cannot block yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	block := &models.UserBlock{
		BlockerID: actorID,
		BlockedID: targetID,
	}
	if err := s.blockRepo.Create(ctx, block); err != nil {
		return denied("block_user", err)
	}

	transitioned("block_user")
	return nil
}

// UnblockUser removes the actor's blocking edge to the target.
func (s *UserService) UnblockUser(ctx context.Context, actorID, targetID uint) error {
	if err := s.blockRepo.Delete(ctx, actorID, targetID); err != nil {
		return denied("unblock_user", err)
	}
	transitioned("unblock_user")
	return nil
}

// ListBlocked returns the users the actor has blocked.
func (s *UserService) ListBlocked(ctx context.Context, actorID uint) ([]models.User, error) {
	return s.blockRepo.ListBlocked(ctx, actorID)
}
