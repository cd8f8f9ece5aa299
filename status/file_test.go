package status

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creativeprojects/mailcheck/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesAndPersistsInitialStatus(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "status.json")
	file := NewFile(filename)

	store, err := file.Load([]string{"x@a.com", "y@a.com", ""})
	require.NoError(t, err)

	expected := Store{
		"x@a.com": {Status: Pending},
		"y@a.com": {Status: Pending},
	}
	assert.Equal(t, expected, store)

	// initial state is on disk before Load returns
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"x@a.com": {"status": "pending", "last_checked": null},
		"y@a.com": {"status": "pending", "last_checked": null}
	}`, string(data))
}

func TestLoadEmptyFileInitialisesStatus(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, os.WriteFile(filename, []byte("\n"), 0600))

	store, err := NewFile(filename).Load([]string{"x@a.com", "y@a.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x@a.com", "y@a.com"}, store.Pending())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"x@a.com"`)
}

func TestLoadExistingFileIgnoresRecipients(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{"old@a.com": {"status": "complete", "last_checked": null}}`), 0600))

	store, err := NewFile(filename).Load([]string{"x@a.com"})
	require.NoError(t, err)
	assert.Equal(t, Store{"old@a.com": {Status: Complete}}, store)
}

func TestLoadMalformedFile(t *testing.T) {
	fixtures := []string{
		`{"x@a.com": `,
		`["x@a.com"]`,
		`{"x@a.com": {"status": "unknown", "last_checked": null}}`,
		`{"x@a.com": {"status": "pending", "last_checked": "yesterday"}}`,
	}
	for _, fixture := range fixtures {
		t.Run(fixture, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "status.json")
			require.NoError(t, os.WriteFile(filename, []byte(fixture), 0600))

			_, err := NewFile(filename).Load(nil)
			assert.ErrorIs(t, err, lib.ErrMalformedStatus)

			// no auto-repair
			data, err := os.ReadFile(filename)
			require.NoError(t, err)
			assert.Equal(t, fixture, string(data))
		})
	}
}

func TestLoadTimestampWithoutTimezone(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "status.json")
	content := `{
    "x@a.com": {"status": "pending", "last_checked": "2024-02-01T09:30:15.123456"},
    "y@a.com": {"status": "complete", "last_checked": "2024-02-01T09:30:15"}
}`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0600))

	store, err := NewFile(filename).Load(nil)
	require.NoError(t, err)

	expected := time.Date(2024, 2, 1, 9, 30, 15, 123456000, time.Local)
	require.NotNil(t, store["x@a.com"].LastChecked)
	assert.True(t, expected.Equal(*store["x@a.com"].LastChecked))
	require.NotNil(t, store["y@a.com"].LastChecked)
	assert.Equal(t, 15, store["y@a.com"].LastChecked.Second())
}

func TestSaveAndLoadStatus(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "status.json")
	file := NewFile(filename)
	lastChecked := time.Date(2024, 2, 1, 9, 30, 15, 0, time.UTC)

	store := New([]string{"x@a.com", "y@a.com"})
	store.Touch("x@a.com", lastChecked)
	store.Complete("y@a.com")
	require.NoError(t, file.Save(store))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"x@a.com\": {\n        \"status\": \"pending\",\n        \"last_checked\": \"2024-02-01T09:30:15Z\"\n    },")

	loaded, err := file.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Complete, loaded["y@a.com"].Status)
	require.NotNil(t, loaded["x@a.com"].LastChecked)
	assert.True(t, lastChecked.Equal(*loaded["x@a.com"].LastChecked))
}

func TestSaveFailure(t *testing.T) {
	file := NewFile(filepath.Join(t.TempDir(), "missing", "status.json"))
	err := file.Save(New([]string{"x@a.com"}))
	assert.Error(t, err)
}

func TestDefaultFilename(t *testing.T) {
	assert.Equal(t, DefaultFilename, NewFile("").Filename())
}
