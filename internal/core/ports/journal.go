package ports

import "context"

// ChangeKind is the kind of one change-journal event.
type ChangeKind uint8

const (
	// ChangePath means a path's content or identity possibly changed.
	ChangePath ChangeKind = iota
	// ChangeMembership means a directory's membership changed.
	ChangeMembership
	// ChangeIdentity carries only file-identity (rename-tracking)
	// information. It exists for a different consumer; the classifier
	// accepts and ignores it.
	ChangeIdentity
)

// ChangeEvent is one low-level filesystem change event.
type ChangeEvent struct {
	Kind ChangeKind
	// Path is set for ChangePath and ChangeMembership events.
	Path string
	// FileID is set for ChangeIdentity events.
	FileID uint64
}

// ScanResult is the verdict terminating one journal scan.
type ScanResult struct {
	// Succeeded reports whether the scan produced a reliable, bounded
	// enumeration of changes. A false verdict forces the conservative
	// fallback; it is never surfaced as an error.
	Succeeded bool
	// Cursor is the checkpoint to pass to the next scan.
	Cursor string
}

// ChangeJournal is the external change-tracking source. A scan replays the
// ordered event stream since the given cursor into observe and terminates
// with a verdict.
//
//go:generate mockgen -source=journal.go -destination=mocks/mock_journal.go -package=mocks
type ChangeJournal interface {
	Scan(ctx context.Context, cursor string, observe func(ChangeEvent)) (ScanResult, error)
}
