// Package session holds the authenticated-user state and its four
// transitions: login, logout, update-user and refresh-profile. The
// manager is injected into whatever needs it; nothing reaches for it as
// an ambient global.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/bitdesk/bitdesk/internal/credstore"
	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/services"
	"github.com/bitdesk/bitdesk/pkg/logger"
)

// Route is a navigation target the session can force.
type Route string

const (
	RouteLogin Route = "login"
	RouteDesk  Route = "desk"
)

// Navigator receives forced navigation (login redirect after logout or
// a 401, desk redirect after login).
type Navigator func(Route)

// State is an immutable snapshot of the session.
type State struct {
	Authenticated bool
	User          *domain.User
	Token         string
	Loading       bool
	Err           string
}

// Manager owns the session state.
type Manager struct {
	mu    sync.RWMutex
	state State

	auth     *services.AuthService
	store    *credstore.Store
	navigate Navigator
	updates  chan State
	log      *logrus.Entry
}

func NewManager(auth *services.AuthService, store *credstore.Store, navigate Navigator) *Manager {
	if navigate == nil {
		navigate = func(Route) {}
	}
	return &Manager{
		auth:     auth,
		store:    store,
		navigate: navigate,
		updates:  make(chan State, 16),
		log:      logger.WithField("module", "session"),
	}
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

// Updates delivers state snapshots after every transition. The channel
// is buffered; slow consumers miss intermediate snapshots, never the
// latest one by more than the buffer.
func (m *Manager) Updates() <-chan State {
	return m.updates
}

// Login exchanges a username for a session. On failure the error
// message is stored and the session stays unauthenticated.
func (m *Manager) Login(ctx context.Context, username string) error {
	m.set(func(s *State) {
		s.Loading = true
		s.Err = ""
	})

	grant, err := m.auth.Login(ctx, username)
	if err != nil {
		m.log.Warnf("login failed for %q: %v", username, err)
		m.set(func(s *State) {
			s.Loading = false
			s.Err = err.Error()
		})
		return err
	}

	if err := m.store.SetCredentials(grant.Token, grant.UserID); err != nil {
		// Not fatal: the session works for this run, it just won't
		// survive a restart.
		m.log.Errorf("persist credentials: %v", err)
	}

	user, err := m.auth.UserProfile(ctx, grant.UserID)
	if err != nil {
		m.log.Warnf("profile fetch after login failed: %v", err)
		m.set(func(s *State) {
			s.Loading = false
			s.Err = err.Error()
		})
		return err
	}

	m.set(func(s *State) {
		*s = State{Authenticated: true, User: &user, Token: grant.Token}
	})
	m.navigate(RouteDesk)
	return nil
}

// Restore rebuilds the session from persisted credentials on startup.
// An expired or unreadable token is discarded silently with no profile
// fetch. Restore never returns an error to the caller; a failed restore
// just leaves the session unauthenticated.
func (m *Manager) Restore(ctx context.Context) {
	token, userID, ok, err := m.store.Credentials()
	if err != nil {
		m.log.Errorf("read credentials: %v", err)
		return
	}
	if !ok {
		return
	}

	if tokenExpired(token) {
		m.log.Debugf("persisted token expired, discarding")
		if err := m.store.Clear(); err != nil {
			m.log.Errorf("clear credentials: %v", err)
		}
		return
	}

	// The token has to be visible to the API client before the profile
	// request goes out.
	m.set(func(s *State) { s.Token = token })

	user, err := m.auth.UserProfile(ctx, userID)
	if err != nil {
		m.log.Warnf("session restore failed: %v", err)
		if err := m.store.Clear(); err != nil {
			m.log.Errorf("clear credentials: %v", err)
		}
		m.set(func(s *State) { *s = State{} })
		return
	}

	m.set(func(s *State) {
		*s = State{Authenticated: true, User: &user, Token: token}
	})
	m.navigate(RouteDesk)
}

// Logout clears persisted credentials, resets the session and forces
// the login route.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.log.Errorf("clear credentials: %v", err)
	}
	m.set(func(s *State) { *s = State{} })
	m.navigate(RouteLogin)
}

// UpdateUser replaces the cached profile.
func (m *Manager) UpdateUser(user domain.User) {
	m.set(func(s *State) { s.User = &user })
}

// RefreshUserProfile refetches the profile for the current user.
// Failures are logged and swallowed; authentication state is untouched.
func (m *Manager) RefreshUserProfile(ctx context.Context) {
	snap := m.Snapshot()
	if !snap.Authenticated || snap.User == nil {
		return
	}
	user, err := m.auth.UserProfile(ctx, snap.User.ID)
	if err != nil {
		m.log.Warnf("refresh profile: %v", err)
		return
	}
	m.UpdateUser(user)
}

// HandleUnauthorized is the API client's global 401 hook: drop
// credentials, reset state, force the login route.
func (m *Manager) HandleUnauthorized() {
	m.log.Warnf("received 401, forcing logout")
	m.Logout()
}

func (m *Manager) set(mutate func(*State)) {
	m.mu.Lock()
	mutate(&m.state)
	snap := m.state
	m.mu.Unlock()

	select {
	case m.updates <- snap:
	default:
		// Buffer full; the consumer will still see a newer snapshot.
	}
}

// tokenExpired inspects the token's exp claim without verifying the
// signature (verification is the backend's job). Tokens that cannot be
// parsed or carry no usable expiry are treated as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now())
}
