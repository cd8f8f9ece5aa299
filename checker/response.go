package checker

import (
	"bufio"
	"bytes"
	"errors"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
)

var autoResponseHeaders = []string{
	"Auto-Submitted",
	"X-Auto-Response-Suppress",
	"X-AutoReply",
}

// IsAutoResponse returns true when any of the auto-response headers is present, whatever its value
func IsAutoResponse(header mail.Header) bool {
	for _, key := range autoResponseHeaders {
		if header.Has(key) {
			return true
		}
	}
	return false
}

// ParseHeader reads the header section of a raw message
func ParseHeader(raw []byte) (mail.Header, error) {
	header, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return mail.Header{}, err
	}
	return mail.Header{Header: message.Header{Header: header}}, nil
}

// Sender returns the bare address of the first From mailbox
func Sender(header mail.Header) (string, error) {
	from, err := header.AddressList("From")
	if err != nil {
		return "", err
	}
	if len(from) == 0 {
		return "", errors.New("no sender address")
	}
	return from[0].Address, nil
}

// Respondent returns the sender of raw when the message is an automatic reply
// containing the substring. An empty substring matches any message.
func Respondent(raw []byte, contains string) (string, bool) {
	header, err := ParseHeader(raw)
	if err != nil {
		return "", false
	}
	if !IsAutoResponse(header) || !strings.Contains(string(raw), contains) {
		return "", false
	}
	sender, err := Sender(header)
	if err != nil || sender == "" {
		return "", false
	}
	return sender, true
}
