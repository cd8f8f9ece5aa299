package checker

import (
	"errors"
	"testing"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/mem"
	"github.com/creativeprojects/mailcheck/status"
)

// memorySaver keeps a copy of each saved store
type memorySaver struct {
	saved []status.Store
	err   error
}

func (s *memorySaver) Save(store status.Store) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, store.Clone())
	return nil
}

func (s *memorySaver) last() status.Store {
	if len(s.saved) == 0 {
		return nil
	}
	return s.saved[len(s.saved)-1]
}

var errUnreachable = errors.New("unreachable")

func newTestScanner(t *testing.T, inbox *mem.Inbox, saver Saver, contains string) *Scanner {
	t.Helper()
	return NewScanner(ScannerConfig{
		Open: func() (Inbound, error) {
			if inbox == nil {
				return nil, errUnreachable
			}
			return inbox, nil
		},
		Saver:           saver,
		MessageContains: contains,
		Logger:          lib.NewTestLogger(t, "scanner"),
	})
}

func newTestNotifier(t *testing.T, outbox *mem.Outbox, saver Saver, template string) *Notifier {
	t.Helper()
	return NewNotifier(NotifierConfig{
		Open: func() (Outbound, error) {
			if outbox == nil {
				return nil, errUnreachable
			}
			return outbox, nil
		},
		Saver:    saver,
		From:     "me@example.com",
		Subject:  "Deprecation notice",
		Template: template,
		Logger:   lib.NewTestLogger(t, "notifier"),
	})
}
