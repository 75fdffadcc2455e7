package auth

import (
	"errors"
	"sync"
)

// ErrNoToken is returned when no session token has been stored.
var ErrNoToken = errors.New("no session token stored")

// TokenStore defines the interface for session token storage.
// The backing medium (OS keychain, in-memory) is swappable so tests
// and other platforms don't depend on a real keyring.
type TokenStore interface {
	// Get returns the stored token, or ErrNoToken if none exists.
	Get() (string, error)
	// Set persists the token, replacing any previous one.
	Set(token string) error
	// Clear removes the token. Clearing an absent token is not an error.
	Clear() error
	// IsAuthenticated reports whether a non-empty token is present.
	IsAuthenticated() bool
}

// MemoryStore is an in-memory TokenStore used in tests and on platforms
// without a usable keyring.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *MemoryStore) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}

func (m *MemoryStore) IsAuthenticated() bool {
	token, err := m.Get()
	return err == nil && token != ""
}
