package remote

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/mailbox"
	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/client"
)

type ImapConfig struct {
	ServerURL           string
	Username            string
	Password            string
	DebugLogger         lib.Logger
	NoTLS               bool
	SkipTLSVerification bool
	// Compress enables COMPRESS=DEFLATE when the server supports it
	Compress bool
}

// Imap is an inbound session on an IMAP server
type Imap struct {
	client   *client.Client
	log      lib.Logger
	selected *mailbox.Status
}

// NewImap connects and authenticates to the IMAP server
func NewImap(cfg ImapConfig) (*Imap, error) {
	log := lib.OrNoLog(cfg.DebugLogger)
	if cfg.ServerURL == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("missing information from ImapConfig object")
	}

	var imapClient *client.Client
	var err error
	log.Printf("Connecting to IMAP server %s...", cfg.ServerURL)
	if cfg.NoTLS {
		imapClient, err = client.Dial(cfg.ServerURL)
	} else {
		imapClient, err = client.DialTLS(cfg.ServerURL, tlsConfig(cfg.ServerURL, cfg.SkipTLSVerification))
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", lib.ErrConnection, cfg.ServerURL, err)
	}
	log.Print("Connected")

	if err := imapClient.Login(cfg.Username, cfg.Password); err != nil {
		_ = imapClient.Logout()
		return nil, fmt.Errorf("%w on %s: %w", lib.ErrAuthentication, cfg.ServerURL, err)
	}
	log.Printf("Logged in as %s", cfg.Username)

	if cfg.Compress {
		enableCompression(imapClient, log)
	}

	return &Imap{
		client: imapClient,
		log:    log,
	}, nil
}

func enableCompression(imapClient *client.Client, log lib.Logger) {
	compressClient := compress.NewClient(imapClient)
	supported, err := compressClient.SupportCompress(compress.Deflate)
	if err != nil || !supported {
		log.Print("IMAP server does NOT support COMPRESS=DEFLATE extension")
		return
	}
	if err := compressClient.Compress(compress.Deflate); err != nil {
		log.Printf("cannot enable compression: %s", err)
		return
	}
	log.Print("Compression enabled")
}

// Close the selected mailbox (if any) and logs out
func (i *Imap) Close() error {
	i.log.Print("Closing IMAP connection")
	var closeErr error
	if i.selected != nil {
		closeErr = i.client.Close()
		i.selected = nil
	}
	err := i.client.Logout()
	if closeErr != nil {
		return closeErr
	}
	return err
}

func (i *Imap) SelectMailbox(name string) (*mailbox.Status, error) {
	i.log.Printf("Selecting mailbox %q", name)
	status, err := i.client.Select(name, false)
	if err != nil {
		return nil, fmt.Errorf("cannot select mailbox %q: %w", name, err)
	}
	i.selected = &mailbox.Status{
		Name:     status.Name,
		Messages: status.Messages,
	}
	return i.selected, nil
}

// ListMessages returns the sequence numbers of all the messages in the selected mailbox
func (i *Imap) ListMessages() ([]mailbox.MessageID, error) {
	if i.selected == nil {
		return nil, lib.ErrNotSelected
	}
	seqNums, err := i.client.Search(imap.NewSearchCriteria())
	if err != nil {
		return nil, fmt.Errorf("cannot search mailbox %q: %w", i.selected.Name, err)
	}
	i.log.Printf("Found %d messages in %q", len(seqNums), i.selected.Name)
	ids := make([]mailbox.MessageID, len(seqNums))
	for index, seqNum := range seqNums {
		ids[index] = mailbox.NewMessageIDFromSeq(seqNum)
	}
	return ids, nil
}

// FetchMessage downloads the full message without setting the \Seen flag
func (i *Imap) FetchMessage(id mailbox.MessageID) (*mailbox.Message, error) {
	if i.selected == nil {
		return nil, lib.ErrNotSelected
	}
	seqset := new(imap.SeqSet)
	seqset.AddNum(id.Seq())

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchRFC822Size}

	receiver := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- i.client.Fetch(seqset, items, receiver)
	}()

	var received *imap.Message
	for msg := range receiver {
		received = msg
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("cannot fetch message %s: %w", id, err)
	}
	if received == nil {
		return nil, fmt.Errorf("message %s not found", id)
	}
	body := received.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("message %s has no body", id)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("cannot read message %s: %w", id, err)
	}
	i.log.Printf("Received IMAP message seq=%d size=%d", received.SeqNum, received.Size)
	return &mailbox.Message{
		ID:   id,
		Size: received.Size,
		Raw:  raw,
	}, nil
}

func tlsConfig(serverURL string, skipVerification bool) *tls.Config {
	config := &tls.Config{}
	if host, _, err := net.SplitHostPort(serverURL); err == nil {
		config.ServerName = host
	}
	if skipVerification {
		config.InsecureSkipVerify = true
	}
	return config
}
