package status

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/creativeprojects/mailcheck/lib"
)

// DefaultFilename of the status file, in the current directory
const DefaultFilename = "email_status.json"

// localTimestamp is the ISO-8601 layout without timezone written by earlier versions of the tool
const localTimestamp = "2006-01-02T15:04:05.999999999"

// File persists a Store as an indented JSON document
type File struct {
	filename string
}

func NewFile(filename string) *File {
	if filename == "" {
		filename = DefaultFilename
	}
	return &File{
		filename: filename,
	}
}

func (f *File) Filename() string {
	return f.filename
}

// Load reads the status file. When the file doesn't exist (or is empty) a new store is created
// from the recipients and saved straight away.
func (f *File) Load(recipients []string) (Store, error) {
	data, err := os.ReadFile(f.filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read status file: %w", err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		store := make(Store)
		err = json.Unmarshal(data, &store)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", lib.ErrMalformedStatus, f.filename, err)
		}
		return store, nil
	}

	store := New(recipients)
	err = f.Save(store)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Save overwrites the status file with the content of store
func (f *File) Save(store Store) error {
	file, err := os.Create(f.filename)
	if err != nil {
		return fmt.Errorf("cannot save status: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	err = encoder.Encode(store)
	if err != nil {
		return fmt.Errorf("cannot encode status: %w", err)
	}
	return file.Close()
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status      State   `json:"status"`
		LastChecked *string `json:"last_checked"`
	}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	switch raw.Status {
	case Pending, Complete:
	default:
		return fmt.Errorf("unexpected status %q", raw.Status)
	}
	e.Status = raw.Status
	e.LastChecked = nil
	if raw.LastChecked == nil {
		return nil
	}
	lastChecked, err := parseTimestamp(*raw.LastChecked)
	if err != nil {
		return err
	}
	e.LastChecked = &lastChecked
	return nil
}

func parseTimestamp(value string) (time.Time, error) {
	timestamp, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return timestamp, nil
	}
	timestamp, err = time.ParseInLocation(localTimestamp, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}
	return timestamp, nil
}
