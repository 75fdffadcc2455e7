package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/detective-ambiental/detective/internal/api"
	"github.com/detective-ambiental/detective/internal/cli/auth"
)

// Authenticator is the slice of the session service the manager needs.
// It is an interface so manager tests don't need a live backend.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.User, error)
	FetchUser(ctx context.Context) (*api.User, error)
	Logout()
}

// Manager holds the process-wide session state: the current user and a
// loading flag. It is an explicit object handed to its consumers instead
// of ambient global state, which keeps tests deterministic.
//
// Lifecycle: Bootstrap restores a session from a stored token; Login and
// Logout move between the authenticated and anonymous states. A failure
// during Bootstrap removes the token and degrades silently to anonymous,
// since an expired token is not user-actionable.
type Manager struct {
	mu     sync.Mutex
	svc    Authenticator
	tokens auth.TokenStore
	logger zerolog.Logger

	user    *api.User
	loading bool
	// generation invalidates in-flight Login/Bootstrap results: a result
	// captured under an older generation must not overwrite newer state.
	generation uint64
}

func NewManager(svc Authenticator, tokens auth.TokenStore, logger zerolog.Logger) *Manager {
	return &Manager{svc: svc, tokens: tokens, logger: logger}
}

// Bootstrap initializes the session on startup. With no stored token it
// settles immediately into the anonymous state; otherwise it fetches the
// current user and, on any failure, removes the token.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.mu.Lock()
	if !m.tokens.IsAuthenticated() {
		m.user = nil
		m.loading = false
		m.mu.Unlock()
		return
	}
	m.loading = true
	gen := m.generation
	m.mu.Unlock()

	user, err := m.svc.FetchUser(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return // a newer Login/Logout won the race
	}
	m.loading = false
	if err != nil {
		m.logger.Debug().Err(err).Msg("stored session is invalid, degrading to anonymous")
		_ = m.tokens.Clear()
		m.user = nil
		return
	}
	m.user = user
}

// Login authenticates and, on success, installs the fetched user as the
// current session. The error is propagated to the caller for display.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.User, error) {
	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.loading = true
	m.mu.Unlock()

	user, err := m.svc.Login(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		// Stale attempt: report the outcome but leave state alone.
		return user, err
	}
	m.loading = false
	if err != nil {
		return nil, err
	}
	m.user = user
	return user, nil
}

// Logout clears the token and the user. It is idempotent: calling it
// while already anonymous is a no-op that still succeeds.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.svc.Logout()
	m.user = nil
	m.loading = false
}

// CurrentUser returns the authenticated user, or nil when anonymous.
func (m *Manager) CurrentUser() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Loading reports whether a bootstrap or login is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// IsAuthenticated reports whether a token is currently stored. It may be
// true while the token is already expired server-side; the next
// authenticated call settles the question.
func (m *Manager) IsAuthenticated() bool {
	return m.tokens.IsAuthenticated()
}

// HasConfigPermission is recomputed from the current user on every call,
// never cached. It is safe to call while anonymous.
func (m *Manager) HasConfigPermission() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.PermissionConfig
}
