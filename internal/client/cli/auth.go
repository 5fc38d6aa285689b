package cli

import (
	"context"

	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/client/services"
	"github.com/dmitrijs2005/docsession/internal/common"
)

// getSimpleText, getPassword and getFields are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getFields     = GetFields
)

func (a *App) readCredentials() (models.Credentials, error) {
	name, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return models.Credentials{}, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{Name: name, Password: password}, nil
}

// Signup prompts for a name, a password and optional extra fields, then
// creates the user and logs in as it.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		return services.ErrAlreadyLoggedIn
	}

	creds, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(creds.Password)

	lines, err := getFields(a.reader, a.out)
	if err != nil {
		return err
	}
	fields, err := models.FieldsFromStrings(lines)
	if err != nil {
		return err
	}

	if err := a.session.Signup(ctx, creds, fields); err != nil {
		return err
	}

	printlnFn("Signed up and logged in as", creds.Name)
	return nil
}

// Login prompts for credentials and logs in.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return services.ErrAlreadyLoggedIn
	}

	creds, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(creds.Password)

	if err := a.session.Login(ctx, creds); err != nil {
		return err
	}

	printlnFn("Logged in as", creds.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}
