package checker

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/status"
	"golang.org/x/time/rate"
)

type NotifierConfig struct {
	// Open returns a new authenticated outbound session
	Open func() (Outbound, error)
	// Saver persists the store at the end of the batch
	Saver Saver
	// From is the sender address
	From     string
	Subject  string
	Template string
	// SendRate is the maximum number of messages per minute (0 means no limit)
	SendRate float64
	Logger   lib.Logger
	Progress Progresser
	// Now defaults to time.Now
	Now func() time.Time
}

// Notifier sends the deprecation notice to the recipients still pending
type Notifier struct {
	open     func() (Outbound, error)
	saver    Saver
	from     string
	subject  string
	template string
	sendRate float64
	log      lib.Logger
	progress Progresser
	now      func() time.Time
}

func NewNotifier(cfg NotifierConfig) *Notifier {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Notifier{
		open:     cfg.Open,
		saver:    cfg.Saver,
		from:     cfg.From,
		subject:  cfg.Subject,
		template: cfg.Template,
		sendRate: cfg.SendRate,
		log:      lib.OrNoLog(cfg.Logger),
		progress: orNoProgress(cfg.Progress),
		now:      now,
	}
}

// Send mails the notice to each pending recipient over a single session, and returns the
// updated store (also saved). Recipients missing from the store are added as pending;
// complete recipients are skipped.
func (n *Notifier) Send(store status.Store, recipients []string) (status.Store, error) {
	session, err := n.open()
	if err != nil {
		return store, err
	}
	updated := store.Clone()
	err = n.sendAll(session, updated, recipients)
	closeErr := session.Close()
	if err != nil {
		return store, err
	}
	if closeErr != nil {
		return store, fmt.Errorf("cannot close outbound session: %w", closeErr)
	}
	if n.saver != nil {
		err = n.saver.Save(updated)
		if err != nil {
			return store, err
		}
	}
	return updated, nil
}

func (n *Notifier) sendAll(session Outbound, store status.Store, recipients []string) error {
	var limiter *rate.Limiter
	if n.sendRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(n.sendRate/60), 1)
	}

	n.progress.Start(len(recipients))
	defer n.progress.Stop()

	sent := 0
	for _, address := range recipients {
		n.progress.Increment()
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}
		entry := store.Ensure(address)
		if entry.Status != status.Pending {
			n.log.Printf("skipping %s: %s", address, entry.Status)
			continue
		}
		if limiter != nil {
			err := limiter.Wait(context.Background())
			if err != nil {
				return err
			}
		}
		now := n.now()
		message, err := ComposeMessage(n.from, address, n.subject, RenderTemplate(n.template, address), now)
		if err != nil {
			return err
		}
		err = session.Send(n.from, []string{address}, bytes.NewReader(message))
		if err != nil {
			return err
		}
		store.Touch(address, now)
		sent++
		n.log.Printf("notice sent to %s", address)
	}
	n.log.Printf("%d notices sent", sent)
	return nil
}
