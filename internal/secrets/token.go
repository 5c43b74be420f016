// Package secrets stores the optional API bearer token in the OS keyring so
// it never lands in the config file.
package secrets

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "datadeck"
	user    = "api-token"
)

// Token returns the stored API token, or "" when none is stored.
func Token() (string, error) {
	token, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read api token from keyring: %w", err)
	}
	return token, nil
}

// SetToken stores the API token.
func SetToken(token string) error {
	if err := keyring.Set(service, user, token); err != nil {
		return fmt.Errorf("store api token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the stored token. Deleting a missing token is not an
// error.
func DeleteToken() error {
	if err := keyring.Delete(service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete api token from keyring: %w", err)
	}
	return nil
}
