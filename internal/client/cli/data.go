package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/client/services"
)

// Write sets fields on the current user. Fields come from args as k=v
// pairs; with no args the user is prompted for them.
func (a *App) Write(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}

	lines := args
	if len(lines) == 0 {
		var err error
		if lines, err = getFields(a.reader, a.out); err != nil {
			return err
		}
	}
	if len(lines) == 0 {
		printlnFn("Nothing to write")
		return nil
	}

	fields, err := models.FieldsFromStrings(lines)
	if err != nil {
		return err
	}
	if err := a.session.Write(ctx, fields); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Saved %d field(s)", len(fields)))
	return nil
}

// Show prints the current user record without its password digest.
func (a *App) Show(context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		return services.ErrNotLoggedIn
	}
	return printRecord(u)
}

// Find looks a user up by name. It works whether or not a session is active.
func (a *App) Find(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: find <name>")
		return nil
	}

	rec, err := a.session.FindUser(ctx, args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		printlnFn("No user named", args[0])
		return nil
	}
	return printRecord(rec)
}

func (a *App) Status(context.Context) error {
	mode := a.Mode()
	if mode == "" {
		mode = "unknown"
	}
	if u := a.session.CurrentUser(); u != nil {
		printlnFn(fmt.Sprintf("Logged in as %s (id %s), store %s", u.Name(), u.ID(), mode))
		return nil
	}
	printlnFn(fmt.Sprintf("Not logged in, store %s", mode))
	return nil
}

func printRecord(rec models.Record) error {
	view := rec.Clone()
	delete(view, models.FieldPassword)

	b, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("render record: %w", err)
	}
	printlnFn(string(b))
	return nil
}
