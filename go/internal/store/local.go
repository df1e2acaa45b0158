package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Local is the per-device backend: one JSON file per key under a directory,
// named like the browser storage keys (pro_roster.json, scoreboard.json, ...).
type Local struct {
	dir string
}

// NewLocal creates the directory if needed and returns a Local backend
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) path(key Key) string {
	return filepath.Join(l.dir, key.LocalName()+".json")
}

func (l *Local) Read(_ context.Context, key Key) ([]byte, error) {
	raw, err := os.ReadFile(l.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key.LocalName(), err)
	}
	return raw, nil
}

// Write replaces the file atomically so a failed write keeps the old value
func (l *Local) Write(_ context.Context, key Key, value []byte) error {
	tmp, err := os.CreateTemp(l.dir, key.LocalName()+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key.LocalName(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", key.LocalName(), err)
	}
	if err := os.Rename(tmpName, l.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", key.LocalName(), err)
	}
	return nil
}
