package dataroom

import (
	"context"
	"testing"

	"dataroom/internal/domain"
	roomSvc "dataroom/internal/domain/services/dataroom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

type ctxIdentity struct{}

func (ctxIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}

func asUser(id string) context.Context {
	return context.WithValue(context.Background(), ctxKey{}, id)
}

func TestWorkspaceManager_Current(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "Acme")
	m := NewWorkspaceManager(env.svc, ctxIdentity{})

	ws, err := m.Current(asUser(testOwner))
	require.NoError(t, err)
	assert.True(t, ws.Store.Loaded())
	assert.Len(t, env.svc.ListRooms(ws), 1, "loaded lazily from persistence")

	again, err := m.Current(asUser(testOwner))
	require.NoError(t, err)
	assert.Same(t, ws, again)

	other, err := m.Current(asUser("user-2"))
	require.NoError(t, err)
	assert.NotSame(t, ws, other)
	assert.Empty(t, env.svc.ListRooms(other), "rooms are scoped to their owner")
}

func TestWorkspaceManager_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t)
	m := NewWorkspaceManager(env.svc, ctxIdentity{})

	_, err := m.Current(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = m.Reload(asUser(""))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestWorkspaceManager_ReloadAndForget(t *testing.T) {
	ctx := asUser(testOwner)
	env := newTestEnv(t)
	m := NewWorkspaceManager(env.svc, ctxIdentity{})

	ws, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, env.svc.ListRooms(ws))

	// written through another workspace of the same owner
	_, err = env.svc.CreateRoom(ctx, env.ws, &roomSvc.CreateRoomRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Empty(t, env.svc.ListRooms(ws), "stale until reloaded")

	ws, err = m.Reload(ctx)
	require.NoError(t, err)
	assert.Len(t, env.svc.ListRooms(ws), 1)

	m.Forget(testOwner)
	fresh, err := m.Current(ctx)
	require.NoError(t, err)
	assert.NotSame(t, ws, fresh)
	assert.Len(t, env.svc.ListRooms(fresh), 1)
}
