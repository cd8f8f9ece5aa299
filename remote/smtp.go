package remote

import (
	"errors"
	"fmt"
	"io"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// ImplicitTLSPort is the submission port expecting TLS from the first byte
const ImplicitTLSPort = 465

type SmtpConfig struct {
	ServerURL           string
	Username            string
	Password            string
	DebugLogger         lib.Logger
	NoTLS               bool
	ImplicitTLS         bool
	SkipTLSVerification bool
}

// Smtp is an authenticated outbound session
type Smtp struct {
	client *smtp.Client
	log    lib.Logger
}

// NewSmtp connects to the server, upgrades the connection to TLS and authenticates
func NewSmtp(cfg SmtpConfig) (*Smtp, error) {
	log := lib.OrNoLog(cfg.DebugLogger)
	if cfg.ServerURL == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("missing information from SmtpConfig object")
	}

	var smtpClient *smtp.Client
	var err error
	log.Printf("Connecting to SMTP server %s...", cfg.ServerURL)
	switch {
	case cfg.NoTLS:
		smtpClient, err = smtp.Dial(cfg.ServerURL)
	case cfg.ImplicitTLS:
		smtpClient, err = smtp.DialTLS(cfg.ServerURL, tlsConfig(cfg.ServerURL, cfg.SkipTLSVerification))
	default:
		smtpClient, err = smtp.DialStartTLS(cfg.ServerURL, tlsConfig(cfg.ServerURL, cfg.SkipTLSVerification))
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", lib.ErrConnection, cfg.ServerURL, err)
	}
	log.Print("Connected")

	if err := smtpClient.Auth(sasl.NewPlainClient("", cfg.Username, cfg.Password)); err != nil {
		_ = smtpClient.Close()
		return nil, fmt.Errorf("%w on %s: %w", lib.ErrAuthentication, cfg.ServerURL, err)
	}
	log.Printf("Logged in as %s", cfg.Username)

	return &Smtp{
		client: smtpClient,
		log:    log,
	}, nil
}

// Send one message to the recipients
func (s *Smtp) Send(from string, to []string, body io.Reader) error {
	err := s.client.SendMail(from, to, body)
	if err != nil {
		return fmt.Errorf("cannot send message to %v: %w", to, err)
	}
	s.log.Printf("Message sent to %v", to)
	return nil
}

// Close sends QUIT and closes the connection
func (s *Smtp) Close() error {
	s.log.Print("Closing SMTP connection")
	return s.client.Quit()
}
