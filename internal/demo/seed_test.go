package demo

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	favouritesdb "github.com/mrlokans/atlas/internal/database/favourites"
	"github.com/mrlokans/atlas/internal/entities"
)

func setupSeedTest(t *testing.T) (*favouritesdb.Repository, func()) {
	t.Helper()

	dbPath := "./test_demo_seed_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.FavouriteCountry{}))

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		os.Remove(dbPath)
	}
	return favouritesdb.NewRepository(db), cleanup
}

func TestSeeder_Seed(t *testing.T) {
	t.Run("seeds an empty database", func(t *testing.T) {
		repo, cleanup := setupSeedTest(t)
		defer cleanup()

		inserted, err := NewSeeder(repo).Seed()
		require.NoError(t, err)
		assert.Equal(t, 3, inserted)

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		japan, err := repo.GetByName("Japan")
		require.NoError(t, err)
		assert.Equal(t, "Tokyo", japan.Capital)
		assert.NotEmpty(t, japan.ID)
	})

	t.Run("never touches existing data", func(t *testing.T) {
		repo, cleanup := setupSeedTest(t)
		defer cleanup()

		existing := entities.FavouriteCountry{Name: "Iceland", Capital: "Reykjavík", Population: 366425, Region: "Europe"}
		require.NoError(t, repo.Insert(&existing))

		inserted, err := NewSeeder(repo).Seed()
		require.NoError(t, err)
		assert.Zero(t, inserted)

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("is idempotent", func(t *testing.T) {
		repo, cleanup := setupSeedTest(t)
		defer cleanup()

		seeder := NewSeeder(repo)
		_, err := seeder.Seed()
		require.NoError(t, err)

		inserted, err := seeder.Seed()
		require.NoError(t, err)
		assert.Zero(t, inserted)
	})
}
