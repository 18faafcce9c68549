// Package fs implements filesystem-facing adapters: content fingerprinting
// for observed inputs.
package fs

import (
	"io"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter implements ports.Fingerprinter using XXHash.
type Fingerprinter struct{}

// NewFingerprinter creates a fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// FingerprintPath hashes the content of the file at path. For a directory it
// hashes the sorted entry names: enumeration results are part of the
// fingerprint, so adding or removing an entry changes the hash even when no
// file content changed.
func (f *Fingerprinter) FingerprintPath(path string) (domain.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "path", path)
	}

	if info.IsDir() {
		return f.fingerprintDir(path)
	}
	return f.fingerprintFile(path)
}

func (f *Fingerprinter) fingerprintFile(path string) (domain.Fingerprint, error) {
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "path", path)
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "path", path)
	}
	return domain.Fingerprint(hasher.Sum64()), nil
}

func (f *Fingerprinter) fingerprintDir(path string) (domain.Fingerprint, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "path", path)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	hasher := xxhash.New()
	for _, name := range names {
		_, _ = hasher.WriteString(name)
		_, _ = hasher.Write([]byte{0})
	}
	return domain.Fingerprint(hasher.Sum64()), nil
}
