package remote

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/creativeprojects/mailcheck/mailbox"
	"github.com/emersion/go-maildir"
)

// Maildir is an inbound session on a local Maildir++ tree: INBOX is the root
// and the other mailboxes are the ".Name" subfolders.
type Maildir struct {
	root     string
	log      lib.Logger
	selected maildir.Dir
	status   *mailbox.Status
}

func NewMaildir(root string, logger lib.Logger) (*Maildir, error) {
	if runtime.GOOS == "windows" {
		return nil, errors.New("maildir is not supported on Windows")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", lib.ErrConnection, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w %s: not a directory", lib.ErrConnection, root)
	}
	return &Maildir{
		root: root,
		log:  lib.OrNoLog(logger),
	}, nil
}

func (m *Maildir) Close() error {
	m.selected = ""
	m.status = nil
	return nil
}

// SelectMailbox moves the new messages into cur, like any mail reader does
func (m *Maildir) SelectMailbox(name string) (*mailbox.Status, error) {
	path := m.root
	if !strings.EqualFold(name, mailbox.PrimaryMailbox) {
		path = filepath.Join(m.root, "."+name)
	}
	if _, err := os.Stat(filepath.Join(path, "cur")); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", lib.ErrMailboxNotFound, name)
		}
		return nil, err
	}
	m.log.Printf("Selecting maildir %q", path)
	dir := maildir.Dir(path)
	unseen, err := dir.Unseen()
	if err != nil {
		return nil, fmt.Errorf("cannot read new messages in %q: %w", name, err)
	}
	m.log.Printf("%d new messages in %q", len(unseen), name)
	messages, err := dir.Messages()
	if err != nil {
		return nil, fmt.Errorf("cannot list messages in %q: %w", name, err)
	}
	m.selected = dir
	m.status = &mailbox.Status{
		Name:     name,
		Messages: uint32(len(messages)),
	}
	return m.status, nil
}

// ListMessages returns the keys of all the messages of the selected mailbox, sorted
func (m *Maildir) ListMessages() ([]mailbox.MessageID, error) {
	if m.selected == "" {
		return nil, lib.ErrNotSelected
	}
	messages, err := m.selected.Messages()
	if err != nil {
		return nil, fmt.Errorf("cannot list messages in %q: %w", m.status.Name, err)
	}
	keys := make([]string, len(messages))
	for index, msg := range messages {
		keys[index] = msg.Key()
	}
	sort.Strings(keys)

	ids := make([]mailbox.MessageID, len(keys))
	for index, key := range keys {
		ids[index] = mailbox.NewMessageIDFromKey(key)
	}
	return ids, nil
}

func (m *Maildir) FetchMessage(id mailbox.MessageID) (*mailbox.Message, error) {
	if m.selected == "" {
		return nil, lib.ErrNotSelected
	}
	msg, err := m.selected.MessageByKey(id.Key())
	if err != nil {
		return nil, fmt.Errorf("message %s not found: %w", id, err)
	}
	reader, err := msg.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot open message %s: %w", id, err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read message %s: %w", id, err)
	}
	return &mailbox.Message{
		ID:   id,
		Size: uint32(len(raw)),
		Raw:  raw,
	}, nil
}
