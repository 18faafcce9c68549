// Package state persists engine state using a file-per-key strategy.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.StateStore below a fixed root directory. Keys are
// hashed into filenames, so any string (including slashes) is a valid key.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Read returns the bytes stored under key, or nil, nil if absent.
func (s *Store) Read(key string) ([]byte, error) {
	//nolint:gosec // Path is constructed from trusted root and hashed filename
	data, err := os.ReadFile(s.filename(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}
	return data, nil
}

// Write stores the bytes under key, replacing any previous value.
func (s *Store) Write(key string, data []byte) error {
	filename := s.filename(key)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "key", key)
	}

	//nolint:gosec // Path is constructed from trusted root and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	return nil
}

// Delete removes the entry under key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.filename(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error()), "key", key)
	}
	return nil
}

func (s *Store) filename(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(s.root, hex.EncodeToString(hash[:])+".json")
}
