package group_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/tableboard/internal/database"
	"github.com/fkhayef/tableboard/internal/database/dbtest"
	"github.com/fkhayef/tableboard/internal/group"
	"github.com/fkhayef/tableboard/internal/user"
)

func seedUser(t *testing.T, db *sqlx.DB, username string) *user.User {
	t.Helper()
	now := time.Now().UTC()
	u := &user.User{Email: username + "@example.com", Username: username, Password: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, user.NewRepository(db).Create(context.Background(), u))
	return u
}

func TestRepository_CreateWithMaster(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := group.NewRepository(db)
	master := seedUser(t, db, "gm")
	now := time.Now().UTC()

	g := &group.Group{
		Name: "Tomb of Annihilation", Description: "d", Schedule: "s", Location: "l", Chronicle: "c",
		Master: master.ID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.CreateWithMaster(ctx, g))
	require.NotZero(t, g.ID)

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tomb of Annihilation", got.Name)
	assert.Equal(t, master.ID, got.Master)

	players, err := repo.ListPlayers(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, master.ID, players[0].ID)
	assert.Equal(t, "gm", players[0].Username)

	isPlayer, err := repo.IsPlayer(ctx, g.ID, master.ID)
	require.NoError(t, err)
	assert.True(t, isPlayer)
}

func TestRepository_CreateWithMasterRollsBack(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := group.NewRepository(db)
	now := time.Now().UTC()

	// master does not exist, so the roster insert violates its foreign key
	g := &group.Group{
		Name: "Orphan", Description: "d", Schedule: "s", Location: "l", Chronicle: "c",
		Master: 999, CreatedAt: now, UpdatedAt: now,
	}
	require.Error(t, repo.CreateWithMaster(ctx, g))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM tabletop_groups`))
	assert.Zero(t, count)
}

func TestRepository_AddPlayerIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := group.NewRepository(db)
	master := seedUser(t, db, "gm")
	player := seedUser(t, db, "rogue")
	now := time.Now().UTC()

	g := &group.Group{
		Name: "Waterdeep", Description: "d", Schedule: "s", Location: "l", Chronicle: "c",
		Master: master.ID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.CreateWithMaster(ctx, g))

	for range 2 {
		require.NoError(t, database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
			return group.AddPlayer(ctx, tx, g.ID, player.ID, now.Add(time.Second))
		}))
	}

	players, err := repo.ListPlayers(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, master.ID, players[0].ID)
	assert.Equal(t, player.ID, players[1].ID)

	missing, err := repo.GetByID(ctx, g.ID+1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
