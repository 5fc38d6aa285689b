package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docsession/internal/client/models"
)

func TestRestoreSession(t *testing.T) {
	env := newTestEnv(t, "")
	out := captureOutput(t)
	env.sessions.state = &models.SessionState{
		Active: true,
		User:   models.Record{"_id": map[string]any{"$oid": "abc"}, "name": "alice"},
	}

	require.NoError(t, env.app.restoreSession(context.Background()))

	assert.True(t, env.app.isLoggedIn())
	assert.Equal(t, "(alice)", env.app.getStatus())
	assert.Equal(t, []string{"Resumed session for alice"}, *out)
}

func TestRestoreSession_NothingSaved(t *testing.T) {
	env := newTestEnv(t, "")

	require.NoError(t, env.app.restoreSession(context.Background()))
	assert.False(t, env.app.isLoggedIn())

	env.sessions.state = &models.SessionState{}
	require.NoError(t, env.app.restoreSession(context.Background()))
	assert.False(t, env.app.isLoggedIn())
}

func TestRestoreSession_Errors(t *testing.T) {
	env := newTestEnv(t, "")
	boom := errors.New("boom")
	env.sessions.loadErr = boom

	require.ErrorIs(t, env.app.restoreSession(context.Background()), boom)

	env.sessions.loadErr = nil
	env.sessions.state = &models.SessionState{Active: true}
	require.ErrorContains(t, env.app.restoreSession(context.Background()), "restore session")
	assert.False(t, env.app.isLoggedIn())
}

func TestBindPersistence_SaveErrorDoesNotFailLogin(t *testing.T) {
	env := newTestEnv(t, "")
	env.seed("alice", "secret", nil)
	captureOutput(t)
	env.sessions.saveErr = errors.New("disk full")
	env.app.bindPersistence(context.Background())

	loggedIn(t, env, "alice", "secret")
	assert.True(t, env.app.isLoggedIn())
	assert.Nil(t, env.sessions.saved())
}
