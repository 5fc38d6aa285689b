package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/common"
)

func TestSessionStore_LoadEmpty(t *testing.T) {
	s := NewSessionStore(setupDB(t))

	state, ok, err := s.LoadSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, models.SessionState{}, state)

	at, err := s.SavedAt(context.Background())
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

func TestSessionStore_SaveLoadClear(t *testing.T) {
	s := NewSessionStore(setupDB(t))
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	in := models.SessionState{
		Active: true,
		User: models.Record{
			"_id":     map[string]any{"$oid": "abc"},
			"name":    "alice",
			"profile": map[string]any{"city": "Riga"},
		},
	}
	require.NoError(t, s.SaveSession(ctx, in))

	out, ok, err := s.LoadSession(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, out.Active)
	assert.Equal(t, "abc", out.User.ID())
	assert.Equal(t, "alice", out.User.Name())
	assert.Equal(t, map[string]any{"city": "Riga"}, out.User["profile"])

	at, err := s.SavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(at), "saved at %s", at)

	require.NoError(t, s.ClearSession(ctx))
	_, ok, err = s.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	at, err = s.SavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

func TestSessionStore_LoggedOutState(t *testing.T) {
	s := NewSessionStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, models.SessionState{}))

	out, ok, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, out.Active)
	assert.Nil(t, out.User)
}

func TestSessionStore_CorruptBlob(t *testing.T) {
	db := setupDB(t)
	s := NewSessionStore(db)
	ctx := context.Background()

	require.NoError(t, NewSQLiteRepository(db).Set(ctx, common.SessionMetadataKey, []byte("{not json")))

	_, _, err := s.LoadSession(ctx)
	require.ErrorContains(t, err, "decode session")
}

func TestSessionStore_SaveFailsOnClosedDB(t *testing.T) {
	db := setupDB(t)
	s := NewSessionStore(db)
	require.NoError(t, db.Close())

	require.Error(t, s.SaveSession(context.Background(), models.SessionState{}))
	require.Error(t, s.ClearSession(context.Background()))
}
