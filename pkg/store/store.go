// Package store persists the canonical catalog as a single YAML snapshot
// file. Saves are atomic: the document is written to a temporary file in the
// same directory and renamed over the target, so a crash mid-write never
// leaves a corrupt or half-written store. A missing or unreadable store loads
// as an empty catalog; cold start is a normal path, not an error.
package store

import (
	"os"
	"path/filepath"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/skubridge/skubridge/pkg/catalog"
	"github.com/skubridge/skubridge/pkg/errors"
	"github.com/skubridge/skubridge/pkg/logging"
)

const (
	// formatVersion identifies the on-disk document layout.
	formatVersion = 1

	filePermissions = 0o644
	dirPermissions  = 0o755
)

// document is the on-disk snapshot layout. Items are stored as a sorted list
// rather than a map so saved files diff cleanly.
type document struct {
	Version int            `yaml:"version"`
	SavedAt utc.Time       `yaml:"saved_at"`
	Items   []catalog.Item `yaml:"items"`
}

// Store reads and writes the canonical catalog snapshot at a fixed path.
type Store struct {
	path string
}

// New creates a Store for the given snapshot file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Save atomically replaces the on-disk snapshot with the given canonical set.
// Every item field, including the full location key set, round-trips
// losslessly.
func (s *Store) Save(items catalog.Set) error {
	doc := document{
		Version: formatVersion,
		SavedAt: utc.Now(),
		Items:   items.Items(),
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.WrapStorage("encode", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return errors.WrapStorage("create", dir, err)
	}

	// Write to a temp file in the same directory so the rename is atomic on
	// the same filesystem.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.WrapStorage("write", s.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.WrapStorage("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.WrapStorage("write", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, filePermissions); err != nil {
		os.Remove(tmpPath)
		return errors.WrapStorage("write", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.WrapStorage("rename", s.path, err)
	}

	logging.Debug().
		Str("path", s.path).
		Int("items", len(items)).
		Msg("Saved canonical snapshot")

	return nil
}

// Load reads the on-disk snapshot into a canonical set. A missing,
// unreadable, or undecodable store returns an empty set and no error so the
// engine can always start cold; the condition is logged for operators.
func (s *Store) Load() (catalog.Set, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn().Err(err).Str("path", s.path).Msg("Snapshot unreadable, starting cold")
		}
		return catalog.NewSet(), nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("Snapshot undecodable, starting cold")
		return catalog.NewSet(), nil
	}

	items := catalog.NewSet()
	for _, item := range doc.Items {
		items[item.Key] = item
	}

	logging.Debug().
		Str("path", s.path).
		Int("items", len(items)).
		Msg("Loaded canonical snapshot")

	return items, nil
}
