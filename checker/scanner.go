package checker

import (
	"fmt"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/mailbox"
	"github.com/creativeprojects/mailcheck/status"
)

type ScannerConfig struct {
	// Open returns a new authenticated inbound session
	Open func() (Inbound, error)
	// Saver persists the store at the end of the scan
	Saver Saver
	// Mailbox to scan: defaults to INBOX
	Mailbox string
	// MessageContains is searched in the full text of the automatic replies
	MessageContains string
	Logger          lib.Logger
	Progress        Progresser
}

// Scanner marks as complete the recipients who sent an automatic reply
type Scanner struct {
	open     func() (Inbound, error)
	saver    Saver
	mailbox  string
	contains string
	log      lib.Logger
	progress Progresser
}

func NewScanner(cfg ScannerConfig) *Scanner {
	name := cfg.Mailbox
	if name == "" {
		name = mailbox.PrimaryMailbox
	}
	return &Scanner{
		open:     cfg.Open,
		saver:    cfg.Saver,
		mailbox:  name,
		contains: cfg.MessageContains,
		log:      lib.OrNoLog(cfg.Logger),
		progress: orNoProgress(cfg.Progress),
	}
}

// Scan reads every message of the mailbox and returns the updated store, which is also saved.
// The whole mailbox is read on each call.
func (s *Scanner) Scan(store status.Store) (status.Store, error) {
	session, err := s.open()
	if err != nil {
		return store, err
	}
	updated := store.Clone()
	err = s.scanMailbox(session, updated)
	closeErr := session.Close()
	if err != nil {
		return store, err
	}
	if closeErr != nil {
		return store, fmt.Errorf("cannot close inbound session: %w", closeErr)
	}
	if s.saver != nil {
		err = s.saver.Save(updated)
		if err != nil {
			return store, err
		}
	}
	return updated, nil
}

func (s *Scanner) scanMailbox(session Inbound, store status.Store) error {
	_, err := session.SelectMailbox(s.mailbox)
	if err != nil {
		return err
	}
	ids, err := session.ListMessages()
	if err != nil {
		return err
	}
	s.progress.Start(len(ids))
	defer s.progress.Stop()

	for _, id := range ids {
		s.progress.Increment()
		msg, err := session.FetchMessage(id)
		if err != nil {
			return err
		}
		sender, ok := Respondent(msg.Raw, s.contains)
		if !ok {
			continue
		}
		if store.Complete(sender) {
			s.log.Printf("automatic reply from %s (message %s)", sender, id)
			continue
		}
		s.log.Printf("ignoring automatic reply from unknown address %s", sender)
	}
	return nil
}
