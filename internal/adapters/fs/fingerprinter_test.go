package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

func TestFingerprinter_FileContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	f := fs.NewFingerprinter()
	first, err := f.FingerprintPath(path)
	require.NoError(t, err)
	assert.NotEqual(t, domain.Fingerprint(0), first)

	// Same content, same fingerprint.
	again, err := f.FingerprintPath(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Changed content, changed fingerprint.
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))
	changed, err := f.FingerprintPath(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestFingerprinter_DirectoryMembership(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a"), 0o644))

	f := fs.NewFingerprinter()
	before, err := f.FingerprintPath(dir)
	require.NoError(t, err)

	// Rewriting a file's content leaves the membership fingerprint alone.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package b"), 0o644))
	unchanged, err := f.FingerprintPath(dir)
	require.NoError(t, err)
	assert.Equal(t, before, unchanged)

	// A new entry changes it.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package b"), 0o644))
	after, err := f.FingerprintPath(dir)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprinter_MissingPath(t *testing.T) {
	f := fs.NewFingerprinter()
	_, err := f.FingerprintPath(filepath.Join(t.TempDir(), "gone"))
	require.ErrorContains(t, err, domain.ErrFingerprintFailed.Error())
}
