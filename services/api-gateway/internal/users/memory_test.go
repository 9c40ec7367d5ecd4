package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndLookup(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := &User{Email: "alice@example.com", FullName: "Alice", PasswordHash: "x", Role: "user"}
	require.NoError(t, store.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = store.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &User{Email: "dup@example.com", PasswordHash: "x"}))
	err := store.Create(ctx, &User{Email: "dup@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryStore_UpdateGuardsEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a := &User{Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, store.Create(ctx, a))
	b := &User{Email: "b@example.com", PasswordHash: "x"}
	require.NoError(t, store.Create(ctx, b))

	b.Email = "a@example.com"
	assert.ErrorIs(t, store.Update(ctx, b), ErrEmailTaken)

	b.Email = "b2@example.com"
	b.Role = "admin"
	require.NoError(t, store.Update(ctx, b))

	got, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role)
	assert.Equal(t, "b2@example.com", got.Email)
}

func TestMemoryStore_ListPagination(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Create(ctx, &User{
			Email:        fmt.Sprintf("user-%d@example.com", i),
			PasswordHash: "x",
		}))
	}

	page, total, err := store.List(ctx, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 3)

	rest, _, err := store.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, rest, 2)

	empty, total, err := store.List(ctx, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, empty)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Delete(ctx, uuid.New()), ErrUserNotFound)

	user := &User{Email: "gone@example.com", PasswordHash: "x"}
	require.NoError(t, store.Create(ctx, user))
	require.NoError(t, store.Delete(ctx, user.ID))

	_, err := store.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
