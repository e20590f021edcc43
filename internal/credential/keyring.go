// Package credential keeps the one secret this app needs, the API bearer
// token, in the system keyring.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "tasksync"

// Store holds API tokens in the system keyring.
type Store struct {
	ring keyring.Keyring
}

// Open connects to the system keyring. When no native keychain backend is
// available it falls back to an encrypted file under the config dir.
func Open() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/tasksync/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("tasksync-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

// Token returns the API token stored under key.
func (s *Store) Token(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("reading token %q: %w", key, err)
	}
	return string(item.Data), nil
}

// StoreToken saves the API token under key, replacing any previous value.
func (s *Store) StoreToken(key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("storing token %q: %w", key, err)
	}
	return nil
}
