package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLoginAndResolve(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sessions := NewSessionService(st)

	token, student, err := sessions.Login(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "小明", student.Name)

	resolved, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, student, resolved)
}

func TestSessionLoginUnknownStudent(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sessions := NewSessionService(st)

	_, _, err := sessions.Login(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestSessionSeesAdminAdjustmentImmediately(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sessions := NewSessionService(st)
	catalog := NewCatalogService(st)

	token, _, err := sessions.Login(context.Background(), "s1")
	require.NoError(t, err)

	_, err = catalog.AdjustPoints(context.Background(), "s1", 7)
	require.NoError(t, err)

	// The session is a weak reference by id; the balance is re-fetched,
	// never cached from login time.
	resolved, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 17, resolved.Points)
}

func TestSessionDiesWithDeletedStudent(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sessions := NewSessionService(st)
	catalog := NewCatalogService(st)

	token, _, err := sessions.Login(context.Background(), "s1")
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteStudent(context.Background(), "s1"))

	_, err = sessions.Resolve(context.Background(), token)
	require.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSessionLogout(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sessions := NewSessionService(st)

	token, _, err := sessions.Login(context.Background(), "s2")
	require.NoError(t, err)

	sessions.Logout(token)
	_, err = sessions.Resolve(context.Background(), token)
	require.ErrorIs(t, err, ErrNoActiveSession)

	// Unknown token is a no-op.
	sessions.Logout("nope")
}

func TestResolveUnknownToken(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sessions := NewSessionService(st)

	_, err := sessions.Resolve(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNoActiveSession)
}
