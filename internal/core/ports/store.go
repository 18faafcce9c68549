package ports

// StateStore persists opaque engine state (snapshots, recovery markers)
// keyed by name.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Read returns the bytes stored under key, or nil, nil if absent.
	Read(key string) ([]byte, error)

	// Write stores the bytes under key, replacing any previous value.
	Write(key string, data []byte) error

	// Delete removes the entry under key. Deleting an absent key is not an error.
	Delete(key string) error
}
