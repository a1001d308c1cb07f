package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/tableboard/internal/database"
	"github.com/fkhayef/tableboard/internal/database/dbtest"
	"github.com/fkhayef/tableboard/internal/user"
)

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := user.NewRepository(dbtest.New(t))
	now := time.Now().UTC().Truncate(time.Second)

	u := &user.User{Email: "mira@example.com", Username: "mira", Password: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "mira", byID.Username)
	assert.Nil(t, byID.Avatar)
	assert.True(t, now.Equal(byID.CreatedAt))

	byEmail, err := repo.GetByEmail(ctx, "mira@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byUsername, err := repo.GetByUsername(ctx, "mira")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byUsername.ID)

	missing, err := repo.GetByID(ctx, u.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_CreateDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := user.NewRepository(dbtest.New(t))
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &user.User{Email: "a@example.com", Username: "dup", Password: "h", CreatedAt: now, UpdatedAt: now}))

	err := repo.Create(ctx, &user.User{Email: "b@example.com", Username: "dup", Password: "h", CreatedAt: now, UpdatedAt: now})
	detail, ok := database.UniqueViolation(err)
	require.True(t, ok)
	assert.Contains(t, detail, "username")
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := user.NewRepository(dbtest.New(t))
	now := time.Now().UTC()

	u := &user.User{Email: "a@example.com", Username: "mira", Password: "h", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))

	avatar := "https://example.com/a.png"
	u.Email = "b@example.com"
	u.Avatar = &avatar
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Email)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, avatar, *got.Avatar)
}
