package repository

import (
	"context"
	"errors"
	"testing"

	"gather/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepositoryCreateWithOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	owner := &models.User{Username: "owner", Email: "owner@e.com", Password: "pw"}
	require.NoError(t, db.Create(owner).Error)

	group := &models.Group{Name: "Trail Runners", CreatorID: owner.ID}
	require.NoError(t, repo.CreateWithOwner(ctx, group))
	require.NotZero(t, group.ID)

	// the owner membership row exists and is admin-flagged
	var membership models.GroupMembership
	require.NoError(t, db.Where("group_id = ? AND user_id = ?", group.ID, owner.ID).First(&membership).Error)
	assert.True(t, membership.IsAdmin)
}

func TestGroupRepositoryGetByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)

	_, err := repo.GetByID(context.Background(), 42)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestGroupRepositoryListByMember(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	owner := &models.User{Username: "owner", Email: "owner@e.com", Password: "pw"}
	member := &models.User{Username: "member", Email: "member@e.com", Password: "pw"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(member).Error)

	g1 := &models.Group{Name: "Group One", CreatorID: owner.ID}
	g2 := &models.Group{Name: "Group Two", CreatorID: owner.ID}
	require.NoError(t, repo.CreateWithOwner(ctx, g1))
	require.NoError(t, repo.CreateWithOwner(ctx, g2))

	require.NoError(t, db.Create(&models.GroupMembership{GroupID: g2.ID, UserID: member.ID}).Error)

	joined, err := repo.ListByMember(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, g2.ID, joined[0].ID)

	owned, err := repo.ListByCreator(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestGroupRepositoryDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	owner := &models.User{Username: "owner", Email: "owner@e.com", Password: "pw"}
	member := &models.User{Username: "member", Email: "member@e.com", Password: "pw"}
	requester := &models.User{Username: "req", Email: "req@e.com", Password: "pw"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(member).Error)
	require.NoError(t, db.Create(requester).Error)

	group := &models.Group{Name: "Doomed Group", CreatorID: owner.ID}
	require.NoError(t, repo.CreateWithOwner(ctx, group))

	require.NoError(t, db.Create(&models.GroupMembership{GroupID: group.ID, UserID: member.ID}).Error)
	require.NoError(t, db.Create(&models.GroupRequest{GroupID: group.ID, UserID: requester.ID}).Error)
	content := "hello"
	require.NoError(t, db.Create(&models.GroupPost{GroupID: group.ID, AuthorID: member.ID, Content: &content}).Error)

	require.NoError(t, repo.DeleteCascade(ctx, group.ID))

	var count int64
	db.Model(&models.GroupMembership{}).Where("group_id = ?", group.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.GroupRequest{}).Where("group_id = ?", group.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.GroupPost{}).Where("group_id = ?", group.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Group{}).Where("id = ?", group.ID).Count(&count)
	assert.Zero(t, count)

	// deleting again reports NotFound
	err := repo.DeleteCascade(ctx, group.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
