package repository

import (
	"context"
	"errors"
	"testing"

	"gather/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create and GetByID", func(t *testing.T) {
		user := &models.User{Username: "carol", Email: "carol@e.com", Password: "pw", Name: "Carol Danvers"}
		require.NoError(t, repo.Create(ctx, user))
		require.NotZero(t, user.ID)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "carol", got.Username)
	})

	t.Run("Duplicate email is Conflict", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "carol2", Email: "carol@e.com", Password: "pw"})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("GetByID missing is NotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("GetByEmail missing returns nil", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "nobody@e.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Search matches username and name", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.User{Username: "dave", Email: "dave@e.com", Password: "pw", Name: "Dave Marvel"}))

		byUsername, err := repo.Search(ctx, "caro", 10, 0)
		require.NoError(t, err)
		assert.Len(t, byUsername, 1)

		byName, err := repo.Search(ctx, "Marvel", 10, 0)
		require.NoError(t, err)
		assert.Len(t, byName, 1)
		assert.Equal(t, "dave", byName[0].Username)
	})
}
