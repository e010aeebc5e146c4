package service

import (
	"context"
	"testing"

	"gather/internal/models"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	listFn          func(context.Context, int, int) ([]models.User, error)
	searchFn        func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn:        func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
	}
}

func TestUserServiceBlockSelf(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopBlockRepo())
	err := svc.BlockUser(context.Background(), 7, 7)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestUserServiceBlockMissingTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", 8)
	}

	svc := NewUserService(users, noopBlockRepo())
	err := svc.BlockUser(context.Background(), 7, 8)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestUserServiceBlockTwiceConflict(t *testing.T) {
	blocks := noopBlockRepo()
	blocks.createFn = func(context.Context, *models.UserBlock) error {
		return models.NewConflictError("User is already blocked")
	}

	svc := NewUserService(noopUserRepo(), blocks)
	err := svc.BlockUser(context.Background(), 7, 8)
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestUserServiceBlockCreatesEdge(t *testing.T) {
	var created *models.UserBlock
	blocks := noopBlockRepo()
	blocks.createFn = func(_ context.Context, b *models.UserBlock) error {
		created = b
		return nil
	}

	svc := NewUserService(noopUserRepo(), blocks)
	if err := svc.BlockUser(context.Background(), 7, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.BlockerID != 7 || created.BlockedID != 8 {
		t.Fatalf("unexpected edge: %#v", created)
	}
}

func TestUserServiceUnblockMissing(t *testing.T) {
	blocks := noopBlockRepo()
	blocks.deleteFn = func(context.Context, uint, uint) error {
		return models.NewNotFoundError("Block", 8)
	}

	svc := NewUserService(noopUserRepo(), blocks)
	err := svc.UnblockUser(context.Background(), 7, 8)
	assertAppErrorCode(t, err, models.CodeNotFound)
}
