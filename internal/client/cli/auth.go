package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/api"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for a user name and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.session.Register(ctx, userName, password)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// Login prompts for credentials and keeps the returned tokens in the session.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, userName, password); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Hello calls the protected endpoint and prints its greeting.
func (a *App) Hello(ctx context.Context) error {
	msg, err := a.session.Protected(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Refresh exchanges the refresh token for a new access token.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.session.Refresh(ctx); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Access token refreshed")
	return nil
}

func (a *App) Logout(context.Context) error {
	a.session.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) report(err error) {
	var se *api.StatusError
	switch {
	case errors.As(err, &se) && se.Message != "":
		fmt.Fprintln(a.out, "Error:", se.Message)
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(a.out, "Error: not logged in or session expired, please log in")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Error: server unavailable")
	default:
		fmt.Fprintln(a.out, "Error:", err.Error())
	}
	if errors.Is(err, api.ErrUnauthorized) && !a.session.LoggedIn() {
		fmt.Fprintln(a.out, "Session cleared")
	}
}
