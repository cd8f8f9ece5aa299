// Package checker sends the deprecation notices and looks for the automatic replies.
//
// Both operations take a status.Store and return the updated copy: the store given
// as argument is never modified, and nothing is saved when an operation fails.
package checker

import (
	"io"

	"github.com/creativeprojects/mailcheck/mailbox"
	"github.com/creativeprojects/mailcheck/status"
)

// Inbound is an authenticated session on the mailbox receiving the replies
type Inbound interface {
	SelectMailbox(name string) (*mailbox.Status, error)
	// ListMessages needs a mailbox to be selected first
	ListMessages() ([]mailbox.MessageID, error)
	FetchMessage(id mailbox.MessageID) (*mailbox.Message, error)
	Close() error
}

// Outbound is an authenticated session on the mail submission server
type Outbound interface {
	Send(from string, to []string, body io.Reader) error
	Close() error
}

// Saver persists the store after each operation
type Saver interface {
	Save(store status.Store) error
}

// Progresser displays the progress of a long operation
type Progresser interface {
	Start(total int)
	Increment()
	Stop()
}

type noProgress struct{}

func (p noProgress) Start(total int) {}
func (p noProgress) Increment()      {}
func (p noProgress) Stop()           {}

func orNoProgress(progress Progresser) Progresser {
	if progress == nil {
		return noProgress{}
	}
	return progress
}
