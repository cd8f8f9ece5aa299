package remote

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/mailbox"
	"github.com/emersion/go-maildir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliver(t *testing.T, dir string, raw []byte) {
	t.Helper()

	delivery, err := maildir.NewDelivery(dir)
	require.NoError(t, err)
	_, err = io.Copy(delivery, bytes.NewReader(raw))
	require.NoError(t, err)
	require.NoError(t, delivery.Close())
}

func TestMaildirBackend(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("maildir is not supported on Windows")
	}
	root := t.TempDir()
	require.NoError(t, maildir.Dir(root).Init())

	first := lib.BuildMessage("a@example.com", "me@example.com", "hello", nil, "first")
	second := lib.BuildAutoReply("b@example.com", "me@example.com", "second")
	deliver(t, root, first)
	deliver(t, root, second)

	backend, err := NewMaildir(root, lib.NewTestLogger(t, "maildir"))
	require.NoError(t, err)

	_, err = backend.FetchMessage(mailbox.NewMessageIDFromKey("any"))
	assert.ErrorIs(t, err, lib.ErrNotSelected)

	status, err := backend.SelectMailbox("INBOX")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), status.Messages)

	// selecting moved the messages out of new
	entries, err := os.ReadDir(filepath.Join(root, "new"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	ids, err := backend.ListMessages()
	require.NoError(t, err)
	require.Len(t, ids, 2)

	bodies := make([]string, 0, len(ids))
	for _, id := range ids {
		msg, err := backend.FetchMessage(id)
		require.NoError(t, err)
		assert.Equal(t, uint32(len(msg.Raw)), msg.Size)
		bodies = append(bodies, string(msg.Raw))
	}
	assert.ElementsMatch(t, []string{string(first), string(second)}, bodies)

	assert.NoError(t, backend.Close())
	_, err = backend.ListMessages()
	assert.ErrorIs(t, err, lib.ErrNotSelected)
}

func TestMaildirSubfolder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("maildir is not supported on Windows")
	}
	root := t.TempDir()
	require.NoError(t, maildir.Dir(root).Init())
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".Replies"), 0700))
	require.NoError(t, maildir.Dir(filepath.Join(root, ".Replies")).Init())

	backend, err := NewMaildir(root, nil)
	require.NoError(t, err)

	status, err := backend.SelectMailbox("Replies")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), status.Messages)

	_, err = backend.SelectMailbox("Missing")
	assert.ErrorIs(t, err, lib.ErrMailboxNotFound)
}

func TestMaildirMissingRoot(t *testing.T) {
	_, err := NewMaildir(filepath.Join(t.TempDir(), "nothing"), nil)
	assert.ErrorIs(t, err, lib.ErrConnection)
}
