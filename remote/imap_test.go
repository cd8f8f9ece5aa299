package remote

import (
	"testing"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/remote/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImapBackend(t *testing.T) {
	address := test.StartImap(t)
	autoReply := lib.BuildAutoReply("someone@example.com", "me@example.com", "I'm away")
	test.AppendMessages(t, address, autoReply)

	for _, compression := range []bool{false, true} {
		name := "plain"
		if compression {
			name = "compressed"
		}
		t.Run(name, func(t *testing.T) {
			backend, err := NewImap(ImapConfig{
				ServerURL:   address,
				Username:    test.Username,
				Password:    test.Password,
				NoTLS:       true,
				Compress:    compression,
				DebugLogger: lib.NewTestLogger(t, "imap"),
			})
			require.NoError(t, err)

			t.Run("ListBeforeSelect", func(t *testing.T) {
				_, err := backend.ListMessages()
				assert.ErrorIs(t, err, lib.ErrNotSelected)
			})

			t.Run("SelectMailbox", func(t *testing.T) {
				status, err := backend.SelectMailbox("INBOX")
				require.NoError(t, err)
				assert.Equal(t, "INBOX", status.Name)
				assert.Equal(t, uint32(2), status.Messages)
			})

			t.Run("ListAndFetchMessages", func(t *testing.T) {
				ids, err := backend.ListMessages()
				require.NoError(t, err)
				require.Len(t, ids, 2)
				assert.Equal(t, uint32(1), ids[0].Seq())
				assert.Equal(t, uint32(2), ids[1].Seq())

				first, err := backend.FetchMessage(ids[0])
				require.NoError(t, err)
				assert.Contains(t, string(first.Raw), "From: contact@example.org")

				second, err := backend.FetchMessage(ids[1])
				require.NoError(t, err)
				assert.Equal(t, string(autoReply), string(second.Raw))
				assert.Equal(t, uint32(len(autoReply)), second.Size)
			})

			err = backend.Close()
			assert.NoError(t, err)
		})
	}
}

func TestImapSelectUnknownMailbox(t *testing.T) {
	address := test.StartImap(t)
	backend, err := NewImap(ImapConfig{
		ServerURL: address,
		Username:  test.Username,
		Password:  test.Password,
		NoTLS:     true,
	})
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.SelectMailbox("Not-There")
	assert.Error(t, err)
}

func TestImapAuthenticationFailure(t *testing.T) {
	address := test.StartImap(t)
	_, err := NewImap(ImapConfig{
		ServerURL: address,
		Username:  test.Username,
		Password:  "wrong",
		NoTLS:     true,
	})
	assert.ErrorIs(t, err, lib.ErrAuthentication)
}

func TestImapConnectionFailure(t *testing.T) {
	_, err := NewImap(ImapConfig{
		ServerURL: "127.0.0.1:1",
		Username:  test.Username,
		Password:  test.Password,
		NoTLS:     true,
	})
	assert.ErrorIs(t, err, lib.ErrConnection)
}

func TestImapMissingConfig(t *testing.T) {
	_, err := NewImap(ImapConfig{ServerURL: "127.0.0.1:1"})
	assert.Error(t, err)
}
