package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyring(t *testing.T) {
	ring := New(keyring.NewArrayKeyring(nil))

	_, err := ring.Get("me@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, ring.Set("me@example.com", "secret"))
	password, err := ring.Get("me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "secret", password)

	require.NoError(t, ring.Set("me@example.com", "changed"))
	password, err = ring.Get("me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "changed", password)

	require.NoError(t, ring.Delete("me@example.com"))
	_, err = ring.Get("me@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeyringMissingAccount(t *testing.T) {
	ring := New(keyring.NewArrayKeyring(nil))
	assert.Error(t, ring.Set("", "secret"))
}
