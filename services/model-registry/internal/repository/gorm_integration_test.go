package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"maas-platform/services/model-registry/internal/models"
)

// openTestDB connects to the database named by MAAS_TEST_DATABASE_DSN, or
// skips the test when the variable is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("MAAS_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("MAAS_TEST_DATABASE_DSN not set, skipping postgres integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable("model_tags", &models.ModelMetadata{}, &models.Tag{}, &models.Model{}))
	require.NoError(t, db.AutoMigrate(&models.Model{}, &models.Tag{}, &models.ModelMetadata{}))
	return db
}

func TestGormRepository_Integration(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormModelRepository(db)
	ctx := context.Background()

	t.Run("duplicate create", func(t *testing.T) {
		m := newModel("it-dup", "v1")
		require.NoError(t, repo.Create(ctx, m))
		assert.ErrorIs(t, repo.Create(ctx, newModel("it-dup", "v1")), ErrDuplicateModel)
	})

	t.Run("tags and metadata round trip", func(t *testing.T) {
		m := newModel("it-full", "v1")
		require.NoError(t, repo.Create(ctx, m))
		require.NoError(t, repo.AddTags(ctx, m.ID, []string{"cv", "prod"}))
		require.NoError(t, repo.SetMetadata(ctx, m.ID, map[string]string{"accuracy": "0.91"}))

		got, err := repo.GetByID(ctx, m.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"cv", "prod"}, got.TagNames())
		assert.Equal(t, map[string]string{"accuracy": "0.91"}, got.MetadataMap())
	})

	t.Run("list with tag join deduplicates", func(t *testing.T) {
		m := newModel("it-list", "v1")
		require.NoError(t, repo.Create(ctx, m))
		require.NoError(t, repo.AddTags(ctx, m.ID, []string{"t1", "t2"}))

		// A model matching two of the filter tags must appear once.
		result, total, err := repo.List(ctx, Filter{Name: "it-list", Tags: []string{"t1", "t2"}}, Pagination{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, result, 1)
	})

	t.Run("delete cascades metadata and detaches tags", func(t *testing.T) {
		a := newModel("it-del-a", "v1")
		require.NoError(t, repo.Create(ctx, a))
		b := newModel("it-del-b", "v1")
		require.NoError(t, repo.Create(ctx, b))
		require.NoError(t, repo.AddTags(ctx, a.ID, []string{"shared-it"}))
		require.NoError(t, repo.AddTags(ctx, b.ID, []string{"shared-it"}))
		require.NoError(t, repo.SetMetadata(ctx, a.ID, map[string]string{"k": "v"}))

		require.NoError(t, repo.Delete(ctx, a.ID))

		_, err := repo.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, ErrModelNotFound)

		var count int64
		require.NoError(t, db.Model(&models.ModelMetadata{}).Where("model_id = ?", a.ID).Count(&count).Error)
		assert.Zero(t, count)

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"shared-it"}, got.TagNames())
	})

	t.Run("name filter is case insensitive", func(t *testing.T) {
		m := newModel("It-CaSe", "v1")
		require.NoError(t, repo.Create(ctx, m))

		result, total, err := repo.List(ctx, Filter{Name: "it-case"}, Pagination{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, result, 1)
		assert.Equal(t, "It-CaSe", result[0].Name)
	})
}
