package lib

import (
	"fmt"
	"sort"
	"strings"
)

const messageTemplate = "From: %s\r\n" +
	"To: %s\r\n" +
	"Subject: %s\r\n" +
	"Date: Wed, 11 May 2016 14:31:59 +0000\r\n" +
	"Message-ID: <%d@localhost/>\r\n" +
	"%s" +
	"Content-Type: text/plain\r\n" +
	"\r\n%s"

var messageCounter uint32

// BuildMessage returns a raw RFC 5322 message. Extra headers are written in
// alphabetical order, between the Message-ID and the Content-Type.
func BuildMessage(from, to, subject string, headers map[string]string, body string) []byte {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	extra := &strings.Builder{}
	for _, key := range keys {
		extra.WriteString(key + ": " + headers[key] + "\r\n")
	}
	messageCounter++
	return []byte(fmt.Sprintf(messageTemplate, from, to, subject, messageCounter, extra.String(), body))
}

// BuildAutoReply returns a raw message flagged as an automatic reply
func BuildAutoReply(from, to, body string) []byte {
	return BuildMessage(from, to, "Automatic reply: Out of office", map[string]string{
		"Auto-Submitted": "auto-replied",
	}, body)
}
