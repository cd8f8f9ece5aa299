package lib

import "errors"

var (
	ErrConfigMissing      = errors.New("configuration file not found")
	ErrMissingCredentials = errors.New("missing email address or password")
	ErrConnection         = errors.New("cannot connect to server")
	ErrAuthentication     = errors.New("authentication failure")
	ErrMalformedStatus    = errors.New("malformed status file")
	ErrMailboxNotFound    = errors.New("mailbox not found")
	ErrNotSelected        = errors.New("mailbox not selected")
)
