// Package cli implements the interactive trackIt client: a REPL over the
// session store, the job collection store, and the REST API client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/trackit/internal/client/api"
	"github.com/dmitrijs2005/trackit/internal/client/config"
	"github.com/dmitrijs2005/trackit/internal/client/jobs"
	"github.com/dmitrijs2005/trackit/internal/client/session"
)

type App struct {
	config  *config.Config
	api     api.Client
	session *session.Store
	store   *jobs.Store

	// criteria is page-local filter state; the debouncer's timer goroutine
	// writes it, so access goes through mu.
	mu       sync.Mutex
	criteria jobs.Criteria
	debounce *jobs.Debouncer

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	registered, err := session.DefaultRegisteredScope()
	if err != nil {
		return nil, fmt.Errorf("session scope: %w", err)
	}

	sess := session.NewStore(session.DefaultGuestScope(), registered)
	apiClient := api.NewRESTClient(c.BaseURL, sess.Token)

	return &App{
		config:   c,
		api:      apiClient,
		session:  sess,
		store:    jobs.NewStore(apiClient),
		debounce: jobs.NewDebouncer(c.DebounceDelay),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run restores the session from storage, loads the job collection, and
// hands control to the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.debounce.Stop()

	a.session.Init()
	if a.session.IsAuthenticated() {
		if err := a.store.Load(ctx, a.session); err != nil {
			fmt.Fprintf(a.out, "Could not load jobs: %s\n", err.Error())
		}
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status renders the prompt segment describing the active session.
func (a *App) status() string {
	switch a.session.State() {
	case session.StateGuest:
		return "guest"
	case session.StateRegistered:
		if u := a.session.User(); u != nil {
			return u.Email
		}
		return "registered"
	default:
		return "not logged in"
	}
}

func (a *App) setCriteria(mutate func(*jobs.Criteria)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	mutate(&a.criteria)
}

func (a *App) currentCriteria() jobs.Criteria {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.criteria
}
