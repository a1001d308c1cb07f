package grouprequest_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/tableboard/internal/database/dbtest"
	"github.com/fkhayef/tableboard/internal/group"
	"github.com/fkhayef/tableboard/internal/grouprequest"
	"github.com/fkhayef/tableboard/internal/notification"
	"github.com/fkhayef/tableboard/internal/user"
	"github.com/fkhayef/tableboard/pkg/apperror"
)

type fixture struct {
	db      *sqlx.DB
	groups  *group.Repository
	service *grouprequest.Service
	inbox   *notification.Service
	master  *user.User
	player  *user.User
	table   *group.Group
}

func seedUser(t *testing.T, db *sqlx.DB, username string) *user.User {
	t.Helper()
	now := time.Now().UTC()
	u := &user.User{Email: username + "@example.com", Username: username, Password: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, user.NewRepository(db).Create(context.Background(), u))
	return u
}

func seedGroup(t *testing.T, groups *group.Repository, name string, master int64) *group.Group {
	t.Helper()
	now := time.Now().UTC()
	g := &group.Group{
		Name: name, Description: "d", Schedule: "s", Location: "l", Chronicle: "c",
		Master: master, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, groups.CreateWithMaster(context.Background(), g))
	return g
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := dbtest.New(t)
	groups := group.NewRepository(db)
	master := seedUser(t, db, "gm")
	inbox := notification.NewService(notification.NewRepository(db), user.NewRepository(db))

	return fixture{
		db:      db,
		groups:  groups,
		service: grouprequest.NewService(grouprequest.NewRepository(db), groups, inbox),
		inbox:   inbox,
		master:  master,
		player:  seedUser(t, db, "rogue"),
		table:   seedGroup(t, groups, "Storm King's Thunder", master.ID),
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	appErr, ok := apperror.From(err)
	require.True(t, ok, "expected an app error, got %v", err)
	assert.Equal(t, status, appErr.Status)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	req, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	assert.NotZero(t, req.ID)
	assert.Equal(t, f.table.ID, req.GroupID)
	assert.Equal(t, f.player.ID, req.UserID)
	assert.Equal(t, grouprequest.StatusPending, req.Status)
}

func TestCreate_Duplicate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	_, err = f.service.Create(ctx, f.table.ID, f.player.ID)
	assert.ErrorIs(t, err, grouprequest.ErrRequestExists)
	assertStatus(t, err, http.StatusConflict)
}

func TestCreate_AlreadyOnRoster(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.service.Create(ctx, f.table.ID, f.master.ID)
	assert.ErrorIs(t, err, grouprequest.ErrAlreadyInGroup)
	assertStatus(t, err, http.StatusUnprocessableEntity)
}

func TestCreate_UnknownGroup(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.service.Create(ctx, f.table.ID+100, f.player.ID)
	assertStatus(t, err, http.StatusNotFound)
}

func TestAccept_AddsRequesterToRoster(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	accepted, err := f.service.Accept(ctx, f.table.ID, created.ID, f.master.ID)
	require.NoError(t, err)
	assert.Equal(t, grouprequest.StatusAccepted, accepted.Status)

	onRoster, err := f.groups.IsPlayer(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)
	assert.True(t, onRoster)

	pending, err := f.service.List(ctx, f.master.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAccept_Twice(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	first, err := f.service.Accept(ctx, f.table.ID, created.ID, f.master.ID)
	require.NoError(t, err)

	second, err := f.service.Accept(ctx, f.table.ID, created.ID, f.master.ID)
	require.NoError(t, err)
	assert.Equal(t, grouprequest.StatusAccepted, second.Status)
	assert.True(t, first.UpdatedAt.Equal(second.UpdatedAt))

	players, err := f.groups.ListPlayers(ctx, f.table.ID)
	require.NoError(t, err)
	assert.Len(t, players, 2)
}

func TestAccept_OnlyMaster(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	_, err = f.service.Accept(ctx, f.table.ID, created.ID, f.player.ID)
	assert.ErrorIs(t, err, grouprequest.ErrNotMaster)
	assertStatus(t, err, http.StatusForbidden)

	onRoster, err := f.groups.IsPlayer(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)
	assert.False(t, onRoster)
}

func TestAccept_MismatchedGroup(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	other := seedGroup(t, f.groups, "Out of the Abyss", f.master.ID)

	created, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	_, err = f.service.Accept(ctx, other.ID, created.ID, f.master.ID)
	assert.ErrorIs(t, err, grouprequest.ErrRequestNotFound)

	_, err = f.service.Accept(ctx, f.table.ID, created.ID+100, f.master.ID)
	assert.ErrorIs(t, err, grouprequest.ErrRequestNotFound)
}

func TestReject_DeletesRequest(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	require.ErrorIs(t, f.service.Reject(ctx, f.table.ID, created.ID, f.player.ID), grouprequest.ErrNotMaster)
	require.NoError(t, f.service.Reject(ctx, f.table.ID, created.ID, f.master.ID))

	var count int
	require.NoError(t, f.db.Get(&count, `SELECT COUNT(*) FROM group_requests`))
	assert.Zero(t, count)

	// a rejected user may ask again
	_, err = f.service.Create(ctx, f.table.ID, f.player.ID)
	assert.NoError(t, err)
}

func TestList_PendingForMasterOnly(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	otherMaster := seedUser(t, f.db, "dm")
	otherTable := seedGroup(t, f.groups, "Rime of the Frostmaiden", otherMaster.ID)
	bard := seedUser(t, f.db, "bard")

	pending, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)
	accepted, err := f.service.Create(ctx, f.table.ID, bard.ID)
	require.NoError(t, err)
	_, err = f.service.Accept(ctx, f.table.ID, accepted.ID, f.master.ID)
	require.NoError(t, err)
	_, err = f.service.Create(ctx, otherTable.ID, f.player.ID)
	require.NoError(t, err)

	listings, err := f.service.List(ctx, f.master.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	assert.Equal(t, pending.ID, got.ID)
	assert.Equal(t, f.table.ID, got.GroupID)
	assert.Equal(t, f.player.ID, got.UserID)
	assert.Equal(t, grouprequest.StatusPending, got.Status)
	assert.Equal(t, "Storm King's Thunder", got.GroupName)
	assert.Equal(t, f.master.ID, got.GroupMaster)
	assert.Equal(t, "rogue", got.Username)

	empty, err := f.service.List(ctx, bard.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

type failingNotifier struct{}

func (failingNotifier) RequestReceived(context.Context, *group.Group, int64) error {
	return errors.New("inbox down")
}

func (failingNotifier) RequestAccepted(context.Context, *group.Group, int64) error {
	return errors.New("inbox down")
}

func (failingNotifier) RequestRejected(context.Context, *group.Group, int64) error {
	return errors.New("inbox down")
}

func TestWorkflowNotifiesBothSides(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	req, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	items, _, err := f.inbox.List(ctx, f.master.ID, notification.Page{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, notification.KindRequestReceived, items[0].Kind)
	assert.Equal(t, "rogue requested to join Storm King's Thunder", items[0].Message)

	_, err = f.service.Accept(ctx, f.table.ID, req.ID, f.master.ID)
	require.NoError(t, err)

	items, _, err = f.inbox.List(ctx, f.player.ID, notification.Page{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, notification.KindRequestAccepted, items[0].Kind)

	// accepting twice does not notify again
	_, err = f.service.Accept(ctx, f.table.ID, req.ID, f.master.ID)
	require.NoError(t, err)

	count, err := f.inbox.UnreadCount(ctx, f.player.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRejectNotifiesRequester(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	req, err := f.service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.Reject(ctx, f.table.ID, req.ID, f.master.ID))

	items, _, err := f.inbox.List(ctx, f.player.ID, notification.Page{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, notification.KindRequestRejected, items[0].Kind)
	assert.Equal(t, "your request to join Storm King's Thunder was rejected", items[0].Message)
}

func TestNotifierFailureDoesNotUndoWorkflow(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	service := grouprequest.NewService(grouprequest.NewRepository(f.db), f.groups, failingNotifier{})

	req, err := service.Create(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)

	accepted, err := service.Accept(ctx, f.table.ID, req.ID, f.master.ID)
	require.NoError(t, err)
	assert.Equal(t, grouprequest.StatusAccepted, accepted.Status)

	isPlayer, err := f.groups.IsPlayer(ctx, f.table.ID, f.player.ID)
	require.NoError(t, err)
	assert.True(t, isPlayer)
}
