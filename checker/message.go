package checker

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// AddressPlaceholder is replaced by the recipient address in the message template
const AddressPlaceholder = "{email_address}"

// "{{" and "}}" are literal braces
var placeholderEscapes = []string{"{{", "{", "}}", "}"}

// RenderTemplate replaces the placeholder with the recipient address
func RenderTemplate(template, address string) string {
	replacer := strings.NewReplacer(append(placeholderEscapes, AddressPlaceholder, address)...)
	return replacer.Replace(template)
}

// ComposeMessage builds a plain text message encoded as quoted-printable
func ComposeMessage(from, to, subject, body string, date time.Time) ([]byte, error) {
	var header mail.Header
	header.SetDate(date)
	header.SetAddressList("From", []*mail.Address{{Address: from}})
	header.SetAddressList("To", []*mail.Address{{Address: to}})
	header.SetSubject(subject)
	header.SetMessageID(messageID(from))
	header.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	header.Set("Content-Transfer-Encoding", "quoted-printable")

	buffer := &bytes.Buffer{}
	writer, err := mail.CreateSingleInlineWriter(buffer, header)
	if err != nil {
		return nil, fmt.Errorf("cannot create message: %w", err)
	}
	_, err = io.WriteString(writer, body)
	if err != nil {
		return nil, fmt.Errorf("cannot write message body: %w", err)
	}
	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("cannot write message body: %w", err)
	}
	return buffer.Bytes(), nil
}

func messageID(from string) string {
	domain := "mailcheck.localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return uuid.NewString() + "@" + domain
}
