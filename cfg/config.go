package cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/mailbox"
	"github.com/creativeprojects/mailcheck/status"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFilename = "config.json"
	DefaultSubject  = "Email Deprecation Autoresponder Check"

	EnvEmailAddress  = "EMAIL_ADDRESS"
	EnvEmailPassword = "EMAIL_PASSWORD"
)

// Config is read from a JSON file (".json" extension) or a YAML file
type Config struct {
	SmtpServer          string   `json:"smtpServer" yaml:"smtpServer"`
	SmtpPort            int      `json:"smtpPort" yaml:"smtpPort"`
	ImapServer          string   `json:"imapServer" yaml:"imapServer"`
	ImapPort            int      `json:"imapPort" yaml:"imapPort"`
	EmailAddress        string   `json:"emailAddress" yaml:"emailAddress"`
	EmailPassword       string   `json:"emailPassword" yaml:"emailPassword"`
	MessageContains     string   `json:"messageContains" yaml:"messageContains"`
	MessageTemplate     string   `json:"messageTemplate" yaml:"messageTemplate"`
	MessageSubject      string   `json:"messageSubject" yaml:"messageSubject"`
	UsersToCheck        []string `json:"usersToCheck" yaml:"usersToCheck"`
	StatusFile          string   `json:"statusFile" yaml:"statusFile"`
	Mailbox             string   `json:"mailbox" yaml:"mailbox"`
	Maildir             string   `json:"maildir" yaml:"maildir"`
	Compress            bool     `json:"compress" yaml:"compress"`
	SendRate            float64  `json:"sendRate" yaml:"sendRate"`
	NoTLS               bool     `json:"noTLS" yaml:"noTLS"`
	SkipTLSVerification bool     `json:"skipTLSVerification" yaml:"skipTLSVerification"`
}

// PasswordLookup returns the password stored for the account (from the system keyring for example)
type PasswordLookup func(account string) (string, error)

func newConfig() *Config {
	return &Config{
		SmtpServer:     "smtp.gmail.com",
		SmtpPort:       587,
		ImapServer:     "imap.gmail.com",
		ImapPort:       993,
		MessageSubject: DefaultSubject,
		UsersToCheck:   []string{},
		StatusFile:     status.DefaultFilename,
		Mailbox:        mailbox.PrimaryMailbox,
	}
}

// LoadFromFile loads the configuration from the file
func LoadFromFile(fileName string) (*Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", lib.ErrConfigMissing, fileName)
		}
		return nil, err
	}
	return loadConfig(file, strings.EqualFold(filepath.Ext(fileName), ".json"))
}

type decoder interface {
	Decode(v any) error
}

// loadConfig from a io.ReadCloser
func loadConfig(reader io.ReadCloser, isJSON bool) (*Config, error) {
	defer reader.Close()
	var decoder decoder = yaml.NewDecoder(reader)
	if isJSON {
		decoder = json.NewDecoder(reader)
	}
	config := newConfig()
	err := decoder.Decode(config)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse configuration: %w", err)
	}
	config.setDefaults()
	err = config.Validate()
	if err != nil {
		return nil, err
	}
	return config, nil
}

// setDefaults also replaces values explicitly left empty in the file
func (c *Config) setDefaults() {
	defaults := newConfig()
	if c.SmtpServer == "" {
		c.SmtpServer = defaults.SmtpServer
	}
	if c.SmtpPort == 0 {
		c.SmtpPort = defaults.SmtpPort
	}
	if c.ImapServer == "" {
		c.ImapServer = defaults.ImapServer
	}
	if c.ImapPort == 0 {
		c.ImapPort = defaults.ImapPort
	}
	if c.MessageSubject == "" {
		c.MessageSubject = defaults.MessageSubject
	}
	if c.UsersToCheck == nil {
		c.UsersToCheck = defaults.UsersToCheck
	}
	if c.StatusFile == "" {
		c.StatusFile = defaults.StatusFile
	}
	if c.Mailbox == "" {
		c.Mailbox = defaults.Mailbox
	}
}

func (c *Config) Validate() error {
	if c.SmtpPort < 0 || c.SmtpPort > 65535 {
		return fmt.Errorf("invalid smtpPort %d", c.SmtpPort)
	}
	if c.ImapPort < 0 || c.ImapPort > 65535 {
		return fmt.Errorf("invalid imapPort %d", c.ImapPort)
	}
	if c.SendRate < 0 {
		return fmt.Errorf("invalid sendRate %v: must be positive (or zero for no limit)", c.SendRate)
	}
	return nil
}

// ResolveAddress falls back to the environment when the email address is not in the file
func (c *Config) ResolveAddress() error {
	if c.EmailAddress == "" {
		c.EmailAddress = getEnv(EnvEmailAddress)
	}
	if c.EmailAddress == "" {
		return fmt.Errorf("%w: set emailAddress or %s", lib.ErrMissingCredentials, EnvEmailAddress)
	}
	return nil
}

// ResolveCredentials fills in the email address and password missing from the file:
// the environment is checked first, then the lookup function (if any).
func (c *Config) ResolveCredentials(lookup PasswordLookup) error {
	err := c.ResolveAddress()
	if err != nil {
		return err
	}
	if c.EmailPassword == "" {
		c.EmailPassword = getEnv(EnvEmailPassword)
	}
	if c.EmailPassword == "" && lookup != nil {
		// a missing entry is reported below
		c.EmailPassword, _ = lookup(c.EmailAddress)
	}
	if c.EmailPassword == "" {
		return fmt.Errorf("%w: set emailPassword or %s", lib.ErrMissingCredentials, EnvEmailPassword)
	}
	return nil
}

func (c *Config) SmtpAddress() string {
	return net.JoinHostPort(c.SmtpServer, strconv.Itoa(c.SmtpPort))
}

func (c *Config) ImapAddress() string {
	return net.JoinHostPort(c.ImapServer, strconv.Itoa(c.ImapPort))
}

// Recipients returns the non-blank addresses from usersToCheck
func (c *Config) Recipients() []string {
	recipients := make([]string, 0, len(c.UsersToCheck))
	for _, address := range c.UsersToCheck {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}
		recipients = append(recipients, address)
	}
	return recipients
}

func getEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
