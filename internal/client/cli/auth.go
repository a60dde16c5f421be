package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackit/internal/client/api"
	"github.com/dmitrijs2005/trackit/internal/client/jobs"
)

// Register creates an account on the backend. Validation failures are shown
// field by field; the user stays logged out and can retry.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.api.Signup(ctx, email, username, string(password))
	if err != nil {
		a.reportAPIError("Registration failed", err)
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s. You can log in now.\n", user.Email)
	return nil
}

// Login authenticates against the backend and loads the job collection for
// the new session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	tr, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		a.reportAPIError("Login failed", err)
		return err
	}

	if err := a.session.Login(tr.AccessToken, tr.User); err != nil {
		fmt.Fprintf(a.out, "Could not store session: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", tr.User.Email)
	return a.reloadJobs(ctx)
}

// GuestLogin starts a demo session. The token comes from the backend, but
// the job collection is the local sample dataset; nothing the guest does is
// persisted.
func (a *App) GuestLogin(ctx context.Context) error {
	tr, err := a.api.GuestLogin(ctx)
	if err != nil {
		a.reportAPIError("Guest login failed", err)
		return err
	}

	if err := a.session.Login(tr.AccessToken, tr.User); err != nil {
		fmt.Fprintf(a.out, "Could not store session: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! This is a demo with sample data; nothing is saved.\n", tr.User.Username)
	return a.reloadJobs(ctx)
}

// Logout clears both storage scopes and the held job list.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	a.setCriteria(func(c *jobs.Criteria) { *c = c.Reset() })
	if err := a.store.Load(ctx, a.session); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) reloadJobs(ctx context.Context) error {
	if err := a.store.Load(ctx, a.session); err != nil {
		fmt.Fprintf(a.out, "Could not load jobs: %s\n", err.Error())
		return err
	}
	return nil
}

// reportAPIError prints a decoded backend failure in a user-facing form.
func (a *App) reportAPIError(prefix string, err error) {
	switch {
	case api.IsValidation(err):
		fmt.Fprintf(a.out, "%s: %s\n", prefix, err.Error())
	case api.IsUnauthorized(err):
		fmt.Fprintf(a.out, "%s: %s\n", prefix, err.Error())
	case api.IsNotFound(err):
		fmt.Fprintf(a.out, "%s: not found\n", prefix)
	case api.IsTransport(err):
		fmt.Fprintf(a.out, "%s: server unreachable\n", prefix)
	default:
		fmt.Fprintf(a.out, "%s: %s\n", prefix, err.Error())
	}
}
