// internal/config/keyring.go
package config

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "ezformula"

// TokenStore manages API tokens in the system keyring, one per API host
type TokenStore struct {
	ring keyring.Keyring
}

// NewTokenStore opens the system keyring
func NewTokenStore() (*TokenStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return NewTokenStoreWith(ring), nil
}

// NewTokenStoreWith wraps an already opened keyring
func NewTokenStoreWith(ring keyring.Keyring) *TokenStore {
	return &TokenStore{ring: ring}
}

// SetToken stores the bearer token for the API at apiURL
func (k *TokenStore) SetToken(apiURL, token string) error {
	host, err := APIHost(apiURL)
	if err != nil {
		return err
	}
	return k.ring.Set(keyring.Item{
		Key:         host,
		Data:        []byte(token),
		Label:       serviceName + " token for " + host,
		Description: "API bearer token",
	})
}

// Token retrieves the bearer token for the API at apiURL
func (k *TokenStore) Token(apiURL string) (string, error) {
	host, err := APIHost(apiURL)
	if err != nil {
		return "", err
	}
	item, err := k.ring.Get(host)
	if err != nil {
		return "", fmt.Errorf("token not found for %s: %w", host, err)
	}
	return string(item.Data), nil
}

// DeleteToken removes the token of the API at apiURL
func (k *TokenStore) DeleteToken(apiURL string) error {
	host, err := APIHost(apiURL)
	if err != nil {
		return err
	}
	return k.ring.Remove(host)
}

// ResolveToken fills c.Token from the keyring unless the environment set it
func (c *Config) ResolveToken(store *TokenStore) error {
	if c.Token != "" || store == nil {
		return nil
	}
	token, err := store.Token(c.APIURL)
	if err != nil {
		return err
	}
	c.Token = token
	return nil
}
