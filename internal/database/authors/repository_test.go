package authors

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "authors.db")

	db, err := database.NewDatabaseWithOptions(dbPath, database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB)
}

func TestRepository_CRUD(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	genre := "Fantasy"
	author := &entities.Author{Name: "Ursula K. Le Guin", Genre: &genre}
	require.NoError(t, repo.Create(ctx, author))
	require.NotZero(t, author.ID)

	stored, err := repo.GetByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", stored.Name)
	assert.Equal(t, "Fantasy", *stored.Genre)
	assert.Nil(t, stored.Nationality)

	nationality := "American"
	updated, err := repo.Update(ctx, author.ID, func(a *entities.Author) error {
		a.Nationality = &nationality
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "American", *updated.Nationality)
	assert.Equal(t, "Fantasy", *updated.Genre)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := repo.Delete(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "American", *deleted.Nationality)

	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_Delete_NotFoundLeavesStoreUnchanged(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Author{Name: "Someone"}))

	_, err := repo.Delete(ctx, 999999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
