package repository

import (
	"context"
	"errors"
	"testing"

	"gather/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := &models.User{Username: "author", Email: "author@e.com", Password: "pw"}
	require.NoError(t, db.Create(author).Error)

	content := "first"
	post := &models.Post{AuthorID: author.ID, Content: &content, IsPublic: true}
	require.NoError(t, repo.Create(ctx, post))

	private := "secret"
	require.NoError(t, repo.Create(ctx, &models.Post{AuthorID: author.ID, Content: &private, IsPublic: false}))

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", *got.Content)
	})

	t.Run("GetByID missing is NotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("ListPublic excludes private posts", func(t *testing.T) {
		posts, err := repo.ListPublic(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, post.ID, posts[0].ID)
	})

	t.Run("ListByAuthor returns both", func(t *testing.T) {
		posts, err := repo.ListByAuthor(ctx, author.ID)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, post.ID))

		_, err := repo.GetByID(ctx, post.ID)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}
