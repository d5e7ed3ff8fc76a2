// Package storage is the persistence adapter for the event store: one
// JSON file holding the full ordered event list, written whole on every
// save. Quota exhaustion is the only failure the caller is expected to
// handle specially.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"weekcal/internal/core"
)

// ErrQuotaExceeded signals that a save was abandoned because the encoded
// state would not fit the configured byte budget, or because the
// filesystem itself ran out of room. The in-memory store keeps its state;
// surfaces warn the user and carry on.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// FileStore persists the event collection to a single JSON file.
type FileStore struct {
	path string
	// maxBytes caps the encoded size of a save. Zero disables the cap;
	// the filesystem can still refuse the write.
	maxBytes int64
}

// New creates a file store for the given path. maxBytes of zero means no
// configured quota.
func New(path string, maxBytes int64) *FileStore {
	return &FileStore{path: path, maxBytes: maxBytes}
}

// Path returns the backing file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the persisted event list. A missing file is first-run state
// and yields an empty collection. There is no schema versioning: the file
// is exactly one flat event list.
func (f *FileStore) Load() ([]core.Event, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []core.Event{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var events []core.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return events, nil
}

// Save writes the full collection, replacing the previous state. The
// write goes through a temp file and rename so a failed save never
// corrupts the existing file.
func (f *FileStore) Save(events []core.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return fmt.Errorf("%w: state is %d bytes, quota is %d", ErrQuotaExceeded, len(data), f.maxBytes)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		if isOutOfSpace(err) {
			_ = os.Remove(tmp)
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func isOutOfSpace(err error) bool {
	return errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT)
}
