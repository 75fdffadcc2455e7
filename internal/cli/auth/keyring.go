package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "detective-cli"
	// The token lives under a single well-known key. There is no
	// namespacing and no multi-account support.
	tokenKey = "session-token"
)

// KeyringStore persists the session token in the OS keychain/credential
// manager. It performs no validation of token shape or expiry; validity
// is determined only by backend responses.
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (k *KeyringStore) Get() (string, error) {
	token, err := keyring.Get(service, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (k *KeyringStore) Set(token string) error {
	if err := keyring.Set(service, tokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (k *KeyringStore) Clear() error {
	if err := keyring.Delete(service, tokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // already cleared
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (k *KeyringStore) IsAuthenticated() bool {
	token, err := k.Get()
	return err == nil && token != ""
}
