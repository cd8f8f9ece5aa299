package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const ServiceName = "mailcheck"

// ErrNotFound is returned when no password is stored for the account
var ErrNotFound = keyring.ErrKeyNotFound

// Keyring stores the account passwords
type Keyring struct {
	ring keyring.Keyring
}

// Open the system keyring, falling back to an encrypted file
func Open() (*Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/mailcheck/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("mailcheck-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return New(ring), nil
}

func New(ring keyring.Keyring) *Keyring {
	return &Keyring{ring: ring}
}

// Get returns the password stored for the account
func (k *Keyring) Get(account string) (string, error) {
	item, err := k.ring.Get(account)
	if err != nil {
		return "", fmt.Errorf("getting password for %q: %w", account, err)
	}
	return string(item.Data), nil
}

func (k *Keyring) Set(account, password string) error {
	if account == "" {
		return errors.New("missing account name")
	}
	err := k.ring.Set(keyring.Item{
		Key:         account,
		Data:        []byte(password),
		Label:       ServiceName + " " + account,
		Description: "mailcheck account password",
	})
	if err != nil {
		return fmt.Errorf("setting password for %q: %w", account, err)
	}
	return nil
}

func (k *Keyring) Delete(account string) error {
	err := k.ring.Remove(account)
	if err != nil {
		return fmt.Errorf("deleting password for %q: %w", account, err)
	}
	return nil
}
