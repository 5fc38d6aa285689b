package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docsession/internal/client/models"
)

// bindPersistence keeps the saved session in step with the live one: every
// login and write saves a snapshot, and a logout clears it.
func (a *App) bindPersistence(ctx context.Context) {
	a.session.OnStatusChange(func(active bool) {
		if !active {
			if err := a.sessions.ClearSession(ctx); err != nil {
				a.log.Warn(ctx, "clear saved session", "error", err)
			}
			return
		}
		a.saveSession(ctx)
	})
	a.session.OnDataWrite(func(models.Record) {
		a.saveSession(ctx)
	})
}

func (a *App) saveSession(ctx context.Context) {
	if err := a.sessions.SaveSession(ctx, a.session.Snapshot()); err != nil {
		a.log.Warn(ctx, "save session", "error", err)
	}
}

// restoreSession loads the saved session, if any, into the live one.
func (a *App) restoreSession(ctx context.Context) error {
	state, ok, err := a.sessions.LoadSession(ctx)
	if err != nil {
		return err
	}
	if !ok || !state.Active {
		return nil
	}
	if err := a.session.Restore(state); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	a.log.Info(ctx, "session resumed", "user", state.User.Name())
	printlnFn("Resumed session for", state.User.Name())
	return nil
}
