package database_test

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gniraula/portfolio-site-backend/database"
	"github.com/gniraula/portfolio-site-backend/models"
)

// newTestDB opens a throwaway sqlite database with the full migration set
// applied.
func newTestDB(t *testing.T) database.Database {
	t.Helper()

	path := filepath.Join(t.TempDir(), "portfolio_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, "sqlite"))

	return database.New(db)
}

func strPtr(s string) *string {
	return &s
}

func TestSeedDefaultCategoriesIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, "sqlite"))

	require.NoError(t, database.SeedDefaultCategories(db))

	repo := database.New(db).CategoryRepo()
	first, err := repo.FindAll()
	require.NoError(t, err)
	require.NotEmpty(t, first)
	for _, category := range first {
		require.True(t, category.IsListed)
	}

	// A second run must not duplicate or touch anything.
	require.NoError(t, database.SeedDefaultCategories(db))
	second, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, second, len(first))
}

func TestSeedLeavesExistingDataAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, "sqlite"))

	repo := database.New(db).CategoryRepo()
	require.NoError(t, repo.Add(&models.Category{ID: "custom", Name: "Custom"}))

	require.NoError(t, database.SeedDefaultCategories(db))
	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "custom", all[0].ID)
}
