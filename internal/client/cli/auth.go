package cli

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/dmitrijs2005/skillshare/internal/client/services"
)

// Register asks for the profile fields and creates an account. On success
// the new user is signed in.
func (a *App) Register(ctx context.Context, _ []string) error {
	var form models.UserForm
	var err error

	if form.Name, err = a.ask("Full name"); err != nil {
		return err
	}
	if form.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if form.Password, err = a.askPassword(); err != nil {
		return err
	}
	if form.Username, err = a.ask("Username (optional)"); err != nil {
		return err
	}
	if form.Age, err = a.askInt("Age (optional)", 0); err != nil {
		return err
	}
	if form.Location, err = a.ask("Location (optional)"); err != nil {
		return err
	}
	if form.ProfilePhoto, err = a.askImage("Profile photo"); err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, form)
	if err != nil {
		return err
	}
	a.setView(ViewHome)
	a.printf("Welcome, %s!\n", user.DisplayName())
	return nil
}

func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword()
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.setView(ViewHome)
	a.printf("Signed in as %s\n", user.DisplayName())
	return nil
}

// OAuth prints the provider URL and completes the sign-in from the address
// the browser lands on afterwards.
func (a *App) OAuth(ctx context.Context, _ []string) error {
	a.println("Open this address in your browser and sign in:")
	a.println("  " + a.auth.GoogleLoginURL())

	redirect, err := a.ask("Paste the address you were redirected to")
	if err != nil {
		return err
	}
	token, payload, err := services.ParseOAuthRedirect(redirect)
	if err != nil {
		return err
	}

	user, err := a.auth.CompleteOAuth(ctx, token, payload)
	if err != nil {
		return err
	}
	a.setView(ViewHome)
	a.printf("Signed in as %s\n", user.DisplayName())
	return nil
}

func (a *App) ForgotPassword(ctx context.Context, _ []string) error {
	email, err := a.ask("Email of your account")
	if err != nil {
		return err
	}
	if err := a.auth.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	a.println("If the account exists, a reset link is on its way.")
	return nil
}

func (a *App) ResetPassword(ctx context.Context, _ []string) error {
	token, err := a.ask("Reset token")
	if err != nil {
		return err
	}
	password, err := a.askPassword()
	if err != nil {
		return err
	}
	if err := a.auth.ResetPassword(ctx, token, password); err != nil {
		return err
	}
	a.println("Password changed. You can log in now.")
	return nil
}

// Logout clears the session; the auth service sends us back to the login view.
func (a *App) Logout(ctx context.Context, _ []string) error {
	return a.auth.Logout(ctx)
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	u, ok := a.currentUser()
	if !ok {
		return ErrNotSignedIn
	}
	a.printf("%s <%s>\nid: %s\n", u.DisplayName(), u.Email, u.ID)
	return nil
}
