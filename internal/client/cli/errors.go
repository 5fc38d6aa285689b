package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/docsession/internal/client/client"
	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/client/services"
)

// describeError turns an error from a command into the line shown to the user.
func describeError(err error) string {
	var (
		stateErr *services.StateError
		authErr  *services.AuthError
	)
	switch {
	case errors.As(err, &stateErr):
		return stateErr.Error()
	case errors.As(err, &authErr):
		return authErr.Error()
	case errors.Is(err, client.ErrUnauthorized):
		return "access denied by the store, check the api key"
	case errors.Is(err, client.ErrUnavailable):
		return "store unavailable, try again later"
	case errors.Is(err, models.ErrIncorrectField):
		return err.Error()
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "error: " + err.Error()
	}
}

// reportError prints err for the user and logs it with the command name.
func (a *App) reportError(ctx context.Context, cmd string, err error) {
	printlnFn(describeError(err))
	a.log.Debug(ctx, "command failed", "command", cmd, "error", err)
}
