package domain

import "go.trai.ch/zerr"

var (
	// ErrProtocolViolation is returned when a worker call is issued against a
	// session that is not in a valid source state for that call.
	ErrProtocolViolation = zerr.New("protocol violation")

	// ErrUnrecoverable is returned when a worker session has exhausted its
	// retries or hit a fatal transport error.
	ErrUnrecoverable = zerr.New("unrecoverable worker failure")

	// ErrSessionNotFound is returned when a call references an unknown worker session.
	ErrSessionNotFound = zerr.New("worker session not found")

	// ErrWorkerIDMissing is returned when a worker call carries no identity.
	ErrWorkerIDMissing = zerr.New("worker id missing")

	// ErrClassifierFinalized is returned when a classifier receives events or a
	// second verdict after finalization.
	ErrClassifierFinalized = zerr.New("classifier already finalized")

	// ErrSnapshotSealed is returned when an observation is recorded on a builder
	// that has already been sealed.
	ErrSnapshotSealed = zerr.New("snapshot builder already sealed")

	// ErrSnapshotVersion is returned when a persisted snapshot envelope carries
	// an unsupported version.
	ErrSnapshotVersion = zerr.New("unsupported snapshot envelope version")

	// ErrSnapshotUnsorted is returned when a persisted snapshot envelope is not
	// in the required sort order.
	ErrSnapshotUnsorted = zerr.New("snapshot envelope is not sorted")

	// ErrInvalidFingerprint is returned when a portable fingerprint cannot be decoded.
	ErrInvalidFingerprint = zerr.New("invalid fingerprint encoding")

	// ErrFingerprintFailed is returned when a path's content cannot be fingerprinted.
	ErrFingerprintFailed = zerr.New("failed to fingerprint path")

	// ErrDuplicateAction is returned when two recovery actions share a name.
	ErrDuplicateAction = zerr.New("duplicate recovery action name")

	// ErrMarkerDecodeFailed is returned when a persisted recovery marker cannot be decoded.
	ErrMarkerDecodeFailed = zerr.New("failed to decode recovery marker")

	// ErrStoreReadFailed is returned when the state store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read state store entry")

	// ErrStoreWriteFailed is returned when the state store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write state store entry")

	// ErrStoreDeleteFailed is returned when a state store entry cannot be removed.
	ErrStoreDeleteFailed = zerr.New("failed to delete state store entry")

	// ErrStoreCreateFailed is returned when the state store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state store directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrJournalNotStarted is returned when a scan is requested before the
	// journal source has been started.
	ErrJournalNotStarted = zerr.New("change journal not started")

	// ErrTransportClosed is returned when a call is attempted on a closed transport.
	ErrTransportClosed = zerr.New("transport connection closed")

	// ErrEngineRunFailed is returned when the engine run loop fails.
	ErrEngineRunFailed = zerr.New("engine run failed")
)
