package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maas-platform/services/model-registry/internal/models"
)

func newModel(name, version string) *models.Model {
	return &models.Model{
		Name:     name,
		Version:  version,
		Status:   models.StatusPending,
		OwnerID:  uuid.New(),
		TenantID: uuid.New(),
	}
}

func TestCreate_DuplicateNameVersion(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	first := newModel("resnet50", "v1")
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newModel("resnet50", "v1"))
	assert.ErrorIs(t, err, ErrDuplicateModel)

	// The first model is untouched.
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "resnet50", got.Name)

	// Same name with a different version is fine.
	require.NoError(t, repo.Create(ctx, newModel("resnet50", "v2")))
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewMemoryModelRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestGetByNameVersion(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	m := newModel("bert", "v3")
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByNameVersion(ctx, "bert", "v3")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	_, err = repo.GetByNameVersion(ctx, "bert", "v4")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestList_FilterComposition(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	a := newModel("model-a", "v1")
	a.Framework = "pytorch"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.UpdateStatus(ctx, a.ID, "active"))
	require.NoError(t, repo.AddTags(ctx, a.ID, []string{"x"}))

	b := newModel("model-b", "v1")
	b.Framework = "pytorch"
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.AddTags(ctx, b.ID, []string{"y"}))

	result, total, err := repo.List(ctx, Filter{
		Framework: "pytorch",
		Status:    "active",
		Tags:      []string{"x"},
	}, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, a.ID, result[0].ID)
}

func TestList_NameSubstringCaseInsensitive(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newModel("ResNet50", "v1")))
	require.NoError(t, repo.Create(ctx, newModel("bert-base", "v1")))

	result, total, err := repo.List(ctx, Filter{Name: "resnet"}, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, "ResNet50", result[0].Name)
}

func TestList_PaginationClamp(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, newModel(fmt.Sprintf("model-%02d", i), "v1")))
	}

	// Oversized limit falls back to the default page size.
	result, total, err := repo.List(ctx, Filter{}, Pagination{Page: 1, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, result, 20)

	// Non-positive page behaves as page 1.
	zero, _, err := repo.List(ctx, Filter{}, Pagination{Page: 0, Limit: 10})
	require.NoError(t, err)
	one, _, err := repo.List(ctx, Filter{}, Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, zero, 10)
	require.Len(t, one, 10)
	for i := range zero {
		assert.Equal(t, one[i].ID, zero[i].ID)
	}

	// limit=100 is accepted as-is.
	all, _, err := repo.List(ctx, Filter{}, Pagination{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, all, 25)
}

func TestList_OrderedNewestFirst(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	older := newModel("older", "v1")
	require.NoError(t, repo.Create(ctx, older))
	time.Sleep(2 * time.Millisecond)
	newer := newModel("newer", "v1")
	require.NoError(t, repo.Create(ctx, newer))

	result, _, err := repo.List(ctx, Filter{}, Pagination{})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "newer", result[0].Name)
	assert.Equal(t, "older", result[1].Name)
}

func TestUpdate_PersistsScalars(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	m := newModel("vit", "v1")
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.AddTags(ctx, m.ID, []string{"cv"}))

	m.Description = "vision transformer"
	m.IsPublic = true
	updated, err := repo.Update(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, "vision transformer", updated.Description)
	assert.True(t, updated.IsPublic)
	// Associations survive a scalar update.
	assert.Equal(t, []string{"cv"}, updated.TagNames())
}

func TestDelete(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), ErrModelNotFound)

	m := newModel("tmp", "v1")
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.SetMetadata(ctx, m.ID, map[string]string{"k": "v"}))
	require.NoError(t, repo.Delete(ctx, m.ID))

	_, err := repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrModelNotFound)

	md, err := repo.GetMetadata(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, md)
}

func TestUpdateStatus_AcceptsAnyString(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	m := newModel("llm", "v1")
	require.NoError(t, repo.Create(ctx, m))

	require.NoError(t, repo.UpdateStatus(ctx, m.ID, "archived-by-ops"))
	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "archived-by-ops", got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), "active"), ErrModelNotFound)
}

func TestAddTags(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	m := newModel("tagged", "v1")
	require.NoError(t, repo.Create(ctx, m))

	// Empty input is a no-op, even for a missing model.
	require.NoError(t, repo.AddTags(ctx, uuid.New(), nil))
	assert.ErrorIs(t, repo.AddTags(ctx, uuid.New(), []string{"x"}), ErrModelNotFound)

	// Duplicate names in the input collapse to one association.
	require.NoError(t, repo.AddTags(ctx, m.ID, []string{"cv", "prod", "cv"}))
	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cv", "prod"}, got.TagNames())

	// Re-adding an attached tag changes nothing.
	require.NoError(t, repo.AddTags(ctx, m.ID, []string{"cv"}))
	got, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 2)
}

func TestRemoveTags_SharedTagsSurvive(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	a := newModel("model-a", "v1")
	require.NoError(t, repo.Create(ctx, a))
	b := newModel("model-b", "v1")
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.AddTags(ctx, a.ID, []string{"shared"}))
	require.NoError(t, repo.AddTags(ctx, b.ID, []string{"shared"}))

	// Both models reference the same tag row.
	gotA, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, gotA.Tags, 1)
	require.Len(t, gotB.Tags, 1)
	assert.Equal(t, gotA.Tags[0].ID, gotB.Tags[0].ID)

	require.NoError(t, repo.RemoveTags(ctx, a.ID, []string{"shared"}))

	gotA, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, gotA.Tags)

	gotB, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, gotB.TagNames())
}

func TestSetMetadata_FullReplace(t *testing.T) {
	repo := NewMemoryModelRepository()
	ctx := context.Background()

	m := newModel("annotated", "v1")
	require.NoError(t, repo.Create(ctx, m))

	require.NoError(t, repo.SetMetadata(ctx, m.ID, map[string]string{
		"accuracy": "0.91",
		"dataset":  "imagenet",
	}))

	md, err := repo.GetMetadata(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"accuracy": "0.91", "dataset": "imagenet"}, md)

	// Replacement drops keys that are not re-supplied.
	require.NoError(t, repo.SetMetadata(ctx, m.ID, map[string]string{"accuracy": "0.93"}))
	md, err = repo.GetMetadata(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"accuracy": "0.93"}, md)

	// An empty map clears everything.
	require.NoError(t, repo.SetMetadata(ctx, m.ID, map[string]string{}))
	md, err = repo.GetMetadata(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, md)

	assert.ErrorIs(t, repo.SetMetadata(ctx, uuid.New(), map[string]string{"k": "v"}), ErrModelNotFound)
}

func TestGetMetadata_AbsentModel(t *testing.T) {
	repo := NewMemoryModelRepository()

	md, err := repo.GetMetadata(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, md)
	assert.Empty(t, md)
}
