package test

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/client"
	imapserver "github.com/emersion/go-imap/server"
	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

// Credentials accepted by the test servers: the IMAP memory backend only knows this user,
// the SMTP sink accepts any user name with this password
const (
	Username = "username"
	Password = "password"
)

// StartImap runs an IMAP server with an in-memory backend and returns its address.
// The INBOX initially contains a single message from contact@example.org.
func StartImap(t *testing.T) string {
	t.Helper()

	// Create a memory backend
	be := memory.New()

	server := imapserver.New(be)
	// Since we will use this server for testing only, we can allow plain text
	// authentication over non-encrypted connections
	server.AllowInsecureAuth = true
	server.Enable(compress.NewExtension())

	listener, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)

	t.Logf("Starting IMAP server at %s", listener.Addr().String())
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = server.Serve(listener)
	}()

	t.Cleanup(func() {
		err := server.Close()
		assert.NoError(t, err)
		wg.Wait()
	})
	return listener.Addr().String()
}

// AppendMessages adds the raw messages into the INBOX of the IMAP server
func AppendMessages(t *testing.T, address string, messages ...[]byte) {
	t.Helper()

	imapClient, err := client.Dial(address)
	require.NoError(t, err)
	defer imapClient.Logout()

	require.NoError(t, imapClient.Login(Username, Password))
	for _, raw := range messages {
		err = imapClient.Append("INBOX", nil, time.Now(), bytes.NewBuffer(raw))
		require.NoError(t, err)
	}
}

// SentMessage is a message received by the SMTP sink
type SentMessage struct {
	From string
	To   []string
	Data []byte
}

// SmtpSink is an SMTP server keeping all the messages it receives
type SmtpSink struct {
	Address  string
	mu       sync.Mutex
	messages []SentMessage
	sessions int
}

// StartSmtp runs an SMTP server accepting PLAIN authentication with Password
func StartSmtp(t *testing.T) *SmtpSink {
	t.Helper()

	sink := &SmtpSink{}
	server := smtp.NewServer(sink)
	server.Domain = "localhost"
	server.AllowInsecureAuth = true
	server.ReadTimeout = 10 * time.Second
	server.WriteTimeout = 10 * time.Second

	listener, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)
	sink.Address = listener.Addr().String()

	t.Logf("Starting SMTP server at %s", sink.Address)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = server.Serve(listener)
	}()

	t.Cleanup(func() {
		_ = server.Close()
		wg.Wait()
	})
	return sink
}

// Messages returns a copy of the messages received so far
func (s *SmtpSink) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SentMessage(nil), s.messages...)
}

// Sessions returns the number of connections the server has accepted
func (s *SmtpSink) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions
}

func (s *SmtpSink) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions++
	return &sinkSession{sink: s}, nil
}

func (s *SmtpSink) add(message SentMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, message)
}

type sinkSession struct {
	sink          *SmtpSink
	authenticated bool
	from          string
	to            []string
}

func (s *sinkSession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *sinkSession) Auth(mech string) (sasl.Server, error) {
	if mech != sasl.Plain {
		return nil, errors.New("unsupported authentication mechanism")
	}
	return sasl.NewPlainServer(func(identity, username, password string) error {
		if username != "" && password == Password {
			s.authenticated = true
			return nil
		}
		return errors.New("invalid credentials")
	}), nil
}

func (s *sinkSession) Mail(from string, _ *smtp.MailOptions) error {
	if !s.authenticated {
		return smtp.ErrAuthRequired
	}
	s.from = from
	return nil
}

func (s *sinkSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	if !s.authenticated {
		return smtp.ErrAuthRequired
	}
	s.to = append(s.to, to)
	return nil
}

func (s *sinkSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.sink.add(SentMessage{
		From: s.from,
		To:   s.to,
		Data: data,
	})
	return nil
}

func (s *sinkSession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *sinkSession) Logout() error {
	return nil
}
