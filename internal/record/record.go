// Package record keeps track of successful fetches in a TOML file stored next to the raw files.
// The record is keyed by channel: fetching a channel again replaces its entry.
package record

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/designsync/figma-fetch/internal/constants"
	"github.com/designsync/figma-fetch/internal/fileutils"
	"github.com/ubuntu/decorate"
)

var (
	// ErrEntryNotFound is returned when the record holds nothing for a channel.
	ErrEntryNotFound = errors.New("no record entry for channel")
)

// Entry describes the last successful fetch of a channel.
type Entry struct {
	File      string    `toml:"file"`
	Bytes     int       `toml:"bytes"`
	SHA256    string    `toml:"sha256"`
	FetchedAt time.Time `toml:"fetched_at"`
	RunID     string    `toml:"run_id"`
}

// NewEntry describes the file at path as fetched at fetchedAt by the run runID.
func NewEntry(path, runID string, fetchedAt time.Time) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("could not read fetched file: %v", err)
	}

	sum := sha256.Sum256(data)
	return Entry{
		File:      filepath.ToSlash(path),
		Bytes:     len(data),
		SHA256:    hex.EncodeToString(sum[:]),
		FetchedAt: fetchedAt.UTC(),
		RunID:     runID,
	}, nil
}

// File is the on-disk layout of the record.
type File struct {
	Channels map[string]Entry `toml:"channels"`
}

// Manager reads and updates the record file of a directory.
type Manager struct {
	path string

	log *slog.Logger
}

// New returns a new Manager for the record stored in dir.
func New(l *slog.Logger, dir string) *Manager {
	return &Manager{log: l, path: filepath.Join(dir, constants.RecordFileName)}
}

// Path returns the location of the record file.
func (m Manager) Path() string {
	return m.path
}

// Get returns the entry stored for channel.
// If the record file does not exist, ErrEntryNotFound is returned.
func (m Manager) Get(channel string) (Entry, error) {
	f, err := m.read()
	if err != nil {
		return Entry{}, err
	}

	e, ok := f.Channels[channel]
	if !ok {
		return Entry{}, fmt.Errorf("%w %q", ErrEntryNotFound, channel)
	}
	return e, nil
}

// Update stores e as the entry for channel, keeping the entries of other channels.
// The record file and its directory are created if needed.
func (m Manager) Update(channel string, e Entry) (err error) {
	defer decorate.OnError(&err, "could not update sync record")

	f, err := m.read()
	if err != nil {
		return err
	}
	if f.Channels == nil {
		f.Channels = make(map[string]Entry)
	}
	f.Channels[channel] = e

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("could not encode record file: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0750); err != nil {
		return fmt.Errorf("could not create directory: %v", err)
	}
	if err := fileutils.AtomicWrite(m.path, buf.Bytes(), 0644); err != nil {
		return err
	}
	m.log.Debug("Updated sync record", "file", m.path, "channel", channel)

	return nil
}

// read returns the content of the record file, or an empty record if it does not exist.
func (m Manager) read() (File, error) {
	var f File
	_, err := toml.DecodeFile(m.path, &f)
	if errors.Is(err, os.ErrNotExist) {
		m.log.Debug("No sync record yet", "file", m.path)
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("could not read record file: %v", err)
	}
	return f, nil
}
