package mem

import (
	"bytes"
	"testing"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInbox(t *testing.T) {
	inbox := NewInbox([]byte("first"), []byte("second"))

	_, err := inbox.ListMessages()
	assert.ErrorIs(t, err, lib.ErrNotSelected)

	_, err = inbox.SelectMailbox("Archive")
	assert.ErrorIs(t, err, lib.ErrMailboxNotFound)

	status, err := inbox.SelectMailbox("INBOX")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), status.Messages)

	ids, err := inbox.ListMessages()
	require.NoError(t, err)
	require.Len(t, ids, 2)

	msg, err := inbox.FetchMessage(ids[1])
	require.NoError(t, err)
	assert.Equal(t, "second", string(msg.Raw))

	require.NoError(t, inbox.Close())
	assert.True(t, inbox.Closed())
}

func TestOutboxFailAfter(t *testing.T) {
	outbox := &Outbox{FailAfter: 1}

	require.NoError(t, outbox.Send("me", []string{"a"}, bytes.NewBufferString("one")))
	assert.Error(t, outbox.Send("me", []string{"b"}, bytes.NewBufferString("two")))
	assert.Len(t, outbox.Sent, 1)
}
