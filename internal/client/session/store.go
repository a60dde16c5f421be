package session

import (
	"github.com/dmitrijs2005/trackit/internal/client/models"
)

// State is the lifecycle of the active session.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateGuest
	StateRegistered
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateGuest:
		return "guest"
	case StateRegistered:
		return "registered"
	default:
		return "unknown"
	}
}

// Store holds the current user identity and decides which persistence scope
// backs it. Guest and registered sessions are mutually exclusive at any
// instant. The store is written from the single interaction loop; it does
// not guard against concurrent writers.
type Store struct {
	guest      Scope
	registered Scope

	state State
	user  *models.User
	token string
}

// NewStore builds a Store in the loading state.
func NewStore(guest, registered Scope) *Store {
	return &Store{guest: guest, registered: registered, state: StateLoading}
}

// Init transitions from loading by inspecting the two scopes in a fixed
// priority order: the guest scope first, then the registered scope.
// Whichever yields valid stored credentials wins; if neither does, the
// session is unauthenticated. Stored data that fails to parse is treated as
// absent and the offending scope is cleared, so malformed state never
// crashes startup.
func (s *Store) Init() {
	if creds := s.loadScope(s.guest); creds != nil && creds.Guest {
		s.apply(creds.Token, creds.User, StateGuest)
		return
	}
	if creds := s.loadScope(s.registered); creds != nil {
		s.apply(creds.Token, creds.User, StateRegistered)
		return
	}
	s.state = StateUnauthenticated
}

func (s *Store) loadScope(scope Scope) *Credentials {
	creds, err := scope.Load()
	if err != nil {
		_ = scope.Clear()
		return nil
	}
	return creds
}

func (s *Store) apply(token string, user models.User, state State) {
	u := user
	s.token = token
	s.user = &u
	s.state = state
}

// Login stores the credential in exactly one scope, chosen by the guest flag
// on the identity, and moves the session to the matching state.
func (s *Store) Login(token string, user models.User) error {
	if user.IsGuest {
		if err := s.guest.Save(&Credentials{Token: token, User: user, Guest: true}); err != nil {
			return err
		}
		s.apply(token, user, StateGuest)
		return nil
	}

	if err := s.registered.Save(&Credentials{Token: token, User: user}); err != nil {
		return err
	}
	s.apply(token, user, StateRegistered)
	return nil
}

// Logout clears both scopes unconditionally and resets the identity.
func (s *Store) Logout() {
	_ = s.guest.Clear()
	_ = s.registered.Clear()
	s.token = ""
	s.user = nil
	s.state = StateUnauthenticated
}

func (s *Store) State() State { return s.state }

// User returns the active identity, or nil when unauthenticated.
func (s *Store) User() *models.User { return s.user }

// Token returns the current access token, empty when unauthenticated.
// Suitable as the token source for the API client.
func (s *Store) Token() string { return s.token }

func (s *Store) IsAuthenticated() bool {
	return s.state == StateGuest || s.state == StateRegistered
}

func (s *Store) IsGuest() bool { return s.state == StateGuest }
