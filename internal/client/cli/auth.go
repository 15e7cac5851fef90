package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fraudcheck/internal/common"
)

// seams for tests
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Email:", a.out)
	if err != nil {
		return "", nil, err
	}
	if email == "" {
		return "", nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	if len(password) == 0 {
		return "", nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return email, password, nil
}

func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already signed in. Use 'logout' first.")
		return nil
	}

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.sessions.SignUp(ctx, email, string(password)); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already signed in. Use 'logout' first.")
		return nil
	}

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.sessions.SignIn(ctx, email, string(password)); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	a.sessions.SignOut(ctx)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.sessions.Require()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", id.Email, id.ID)
	return nil
}
