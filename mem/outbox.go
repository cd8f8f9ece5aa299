package mem

import (
	"fmt"
	"io"
)

type Envelope struct {
	From string
	To   []string
	Data []byte
}

// Outbox is an outbound session keeping the messages in memory
type Outbox struct {
	Sent   []Envelope
	closed bool
	// FailAfter makes Send return an error once this many messages have been sent (when > 0)
	FailAfter int
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Send(from string, to []string, body io.Reader) error {
	if o.closed {
		return fmt.Errorf("session closed")
	}
	if o.FailAfter > 0 && len(o.Sent) >= o.FailAfter {
		return fmt.Errorf("message rejected by server")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	o.Sent = append(o.Sent, Envelope{
		From: from,
		To:   to,
		Data: data,
	})
	return nil
}

func (o *Outbox) Close() error {
	o.closed = true
	return nil
}

// Closed returns true once the session has been closed
func (o *Outbox) Closed() bool {
	return o.closed
}
