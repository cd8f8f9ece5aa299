package cmd

import (
	"log"

	"github.com/creativeprojects/mailcheck/cfg"
	"github.com/creativeprojects/mailcheck/checker"
	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/remote"
	"github.com/creativeprojects/mailcheck/status"
	"github.com/creativeprojects/mailcheck/term"
)

// debugLogger returns the logger for the protocol conversations
func debugLogger() lib.Logger {
	if global.verbose {
		return log.Default()
	}
	return nil
}

func checkerLogger(prefix string) lib.Logger {
	return term.NewLogger(term.LevelDebug, prefix)
}

// inboundOpener returns a function opening a session on the local Maildir when configured,
// or on the IMAP server
func inboundOpener(config *cfg.Config) func() (checker.Inbound, error) {
	if config.Maildir != "" {
		return func() (checker.Inbound, error) {
			backend, err := remote.NewMaildir(config.Maildir, debugLogger())
			if err != nil {
				return nil, err
			}
			return backend, nil
		}
	}
	return func() (checker.Inbound, error) {
		backend, err := remote.NewImap(remote.ImapConfig{
			ServerURL:           config.ImapAddress(),
			Username:            config.EmailAddress,
			Password:            config.EmailPassword,
			DebugLogger:         debugLogger(),
			NoTLS:               config.NoTLS,
			SkipTLSVerification: config.SkipTLSVerification,
			Compress:            config.Compress,
		})
		if err != nil {
			return nil, err
		}
		return backend, nil
	}
}

func outboundOpener(config *cfg.Config) func() (checker.Outbound, error) {
	return func() (checker.Outbound, error) {
		backend, err := remote.NewSmtp(remote.SmtpConfig{
			ServerURL:           config.SmtpAddress(),
			Username:            config.EmailAddress,
			Password:            config.EmailPassword,
			DebugLogger:         debugLogger(),
			NoTLS:               config.NoTLS,
			ImplicitTLS:         config.SmtpPort == remote.ImplicitTLSPort,
			SkipTLSVerification: config.SkipTLSVerification,
		})
		if err != nil {
			return nil, err
		}
		return backend, nil
	}
}

// inboundCredentials are not needed to read a local Maildir
func inboundCredentials(config *cfg.Config, lookup cfg.PasswordLookup) error {
	if config.Maildir != "" {
		return nil
	}
	return config.ResolveCredentials(lookup)
}

func newScanner(config *cfg.Config, saver checker.Saver) *checker.Scanner {
	return checker.NewScanner(checker.ScannerConfig{
		Open:            inboundOpener(config),
		Saver:           saver,
		Mailbox:         config.Mailbox,
		MessageContains: config.MessageContains,
		Logger:          checkerLogger("scan"),
		Progress:        newProgresser("Scanning messages"),
	})
}

func newNotifier(config *cfg.Config, saver checker.Saver) *checker.Notifier {
	return checker.NewNotifier(checker.NotifierConfig{
		Open:     outboundOpener(config),
		Saver:    saver,
		From:     config.EmailAddress,
		Subject:  config.MessageSubject,
		Template: config.MessageTemplate,
		SendRate: config.SendRate,
		Logger:   checkerLogger("send"),
		Progress: newProgresser("Sending notices"),
	})
}

// loadStore loads the status file, or creates it with all the recipients pending
func loadStore(config *cfg.Config) (*status.File, status.Store, error) {
	file := status.NewFile(config.StatusFile)
	store, err := file.Load(config.Recipients())
	if err != nil {
		return nil, nil, err
	}
	term.Debugf("loaded %d users from %s", len(store), file.Filename())
	return file, store, nil
}

// verify interface
var (
	_ checker.Inbound  = &remote.Imap{}
	_ checker.Inbound  = &remote.Maildir{}
	_ checker.Outbound = &remote.Smtp{}
)
