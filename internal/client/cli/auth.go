package cli

import (
	"context"

	"github.com/dmitrijs2005/forsa-manager/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for a phone number and password and signs in. Rejected
// credentials are reported to the operator and are not returned as an
// error; only input failures are.
func (a *App) Login(ctx context.Context) error {
	phone, err := getSimpleText(a.in, "Enter phone number", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, phone, password)
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		a.printf("%s\n", loginMessage(err))
		return nil
	}

	a.printf("Welcome, %s!\n", s.Name)
	return a.Home(ctx)
}

// Logout clears the stored session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}
