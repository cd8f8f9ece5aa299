package mem

import (
	"fmt"
	"strings"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/mailbox"
)

// Inbox is an inbound session on messages kept in memory.
// The primary mailbox is the only one available.
type Inbox struct {
	messages []mailbox.Message
	selected bool
	closed   bool
	// FailFetch makes FetchMessage return this error
	FailFetch error
}

func NewInbox(messages ...[]byte) *Inbox {
	inbox := &Inbox{}
	for _, raw := range messages {
		inbox.Add(raw)
	}
	return inbox
}

// Add a raw message at the end of the mailbox
func (b *Inbox) Add(raw []byte) {
	b.messages = append(b.messages, mailbox.Message{
		ID:   mailbox.NewMessageIDFromSeq(uint32(len(b.messages) + 1)),
		Size: uint32(len(raw)),
		Raw:  raw,
	})
}

func (b *Inbox) SelectMailbox(name string) (*mailbox.Status, error) {
	if !strings.EqualFold(name, mailbox.PrimaryMailbox) {
		return nil, fmt.Errorf("%w: %q", lib.ErrMailboxNotFound, name)
	}
	b.selected = true
	return &mailbox.Status{
		Name:     name,
		Messages: uint32(len(b.messages)),
	}, nil
}

func (b *Inbox) ListMessages() ([]mailbox.MessageID, error) {
	if !b.selected {
		return nil, lib.ErrNotSelected
	}
	ids := make([]mailbox.MessageID, len(b.messages))
	for index, msg := range b.messages {
		ids[index] = msg.ID
	}
	return ids, nil
}

func (b *Inbox) FetchMessage(id mailbox.MessageID) (*mailbox.Message, error) {
	if !b.selected {
		return nil, lib.ErrNotSelected
	}
	if b.FailFetch != nil {
		return nil, b.FailFetch
	}
	index := int(id.Seq()) - 1
	if index < 0 || index >= len(b.messages) {
		return nil, fmt.Errorf("message %s not found", id)
	}
	msg := b.messages[index]
	return &msg, nil
}

func (b *Inbox) Close() error {
	b.selected = false
	b.closed = true
	return nil
}

// Closed returns true once the session has been closed
func (b *Inbox) Closed() bool {
	return b.closed
}
