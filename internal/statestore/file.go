package statestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"playhead/internal/logging"
	"playhead/internal/progress"
)

// FileStore persists the record collection as a JSON array on disk. A flock
// sidecar serializes read-modify-write cycles across processes, and writes go
// through a temp file plus rename so a crash never leaves a torn state file.
type FileStore struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewFileStore creates a file-backed persistence store. The file is created
// lazily on first Store call.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "statestore"),
	}
}

// Load reads the record collection from disk. A missing or empty file is a
// fresh start, not an error.
func (f *FileStore) Load() ([]progress.Record, error) {
	if err := f.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock state file: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []progress.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	f.logger.Debug("loaded progress state",
		logging.Int("record_count", len(records)),
		logging.String("path", f.path))
	return records, nil
}

// Store atomically replaces the on-disk collection.
func (f *FileStore) Store(records []progress.Record) error {
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock state file: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Close releases the lock file handle.
func (f *FileStore) Close() error {
	return f.lock.Close()
}
