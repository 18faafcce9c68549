package ports

import "go.trai.ch/forge/internal/core/domain"

// Fingerprinter produces a comparable, serializable hash of a path's content.
//
//go:generate mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// FingerprintPath hashes the content of the file at path. For a
	// directory it hashes the sorted entry names, so enumeration results
	// are part of the fingerprint.
	FingerprintPath(path string) (domain.Fingerprint, error)
}
