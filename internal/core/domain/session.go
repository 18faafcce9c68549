package domain

import "go.trai.ch/zerr"

// SessionState is the master's view of one worker's protocol state.
type SessionState uint8

const (
	// SessionUnattached is the initial state before a worker has attached.
	SessionUnattached SessionState = iota
	// SessionAttaching means an attach is in flight.
	SessionAttaching
	// SessionAttached means the worker is ready to receive assignments.
	SessionAttached
	// SessionNotifying means a notify from the worker is being processed.
	SessionNotifying
	// SessionClosing means a graceful shutdown notice is being processed.
	SessionClosing
	// SessionClosed is terminal: the session ended gracefully.
	SessionClosed
	// SessionFailed is terminal: the session hit an unrecoverable error.
	SessionFailed
)

// String returns a readable state name for logs and diagnostics.
func (s SessionState) String() string {
	switch s {
	case SessionUnattached:
		return "unattached"
	case SessionAttaching:
		return "attaching"
	case SessionAttached:
		return "attached"
	case SessionNotifying:
		return "notifying"
	case SessionClosing:
		return "closing"
	case SessionClosed:
		return "closed"
	case SessionFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Terminal reports whether no further transitions are possible.
func (s SessionState) Terminal() bool {
	return s == SessionClosed || s == SessionFailed
}

// Transition validates a state change and returns the target state. It is
// the single authority for session moves; callers hold the per-session lock.
// Any non-terminal state may move to SessionFailed on an unrecoverable
// transport error. An invalid move is a protocol violation, distinct from
// a transport failure.
func (s SessionState) Transition(to SessionState) (SessionState, error) {
	if to == SessionFailed && !s.Terminal() {
		return SessionFailed, nil
	}

	valid := false
	switch s {
	case SessionUnattached:
		valid = to == SessionAttaching
	case SessionAttaching:
		// Attach may fail back to unattached for a retry.
		valid = to == SessionAttached || to == SessionUnattached
	case SessionAttached:
		valid = to == SessionNotifying || to == SessionClosing
	case SessionNotifying:
		valid = to == SessionAttached
	case SessionClosing:
		valid = to == SessionClosed
	case SessionClosed, SessionFailed:
		valid = false
	}

	if !valid {
		return s, zerr.With(zerr.With(ErrProtocolViolation, "from", s.String()), "to", to.String())
	}
	return to, nil
}

// CallOutcome classifies the result of one remote call. Callers branch on
// this classification, never on raw transport errors.
type CallOutcome uint8

const (
	// OutcomeSucceeded means the call completed on the first attempt.
	OutcomeSucceeded CallOutcome = iota
	// OutcomeSucceededAfterRetry means the call completed after one or more retries.
	OutcomeSucceededAfterRetry
	// OutcomeFailedRetryable means a transient transport failure (network blip, timeout).
	OutcomeFailedRetryable
	// OutcomeFailedFatal means a protocol or logic error; retrying cannot help.
	OutcomeFailedFatal
	// OutcomeCancelled means the local wait was abandoned before a response
	// arrived. Work already acknowledged by the master is not retracted.
	OutcomeCancelled
)

// String returns a readable outcome name.
func (o CallOutcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeSucceededAfterRetry:
		return "succeeded-after-retry"
	case OutcomeFailedRetryable:
		return "failed-retryable"
	case OutcomeFailedFatal:
		return "failed-fatal"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "invalid"
	}
}

// Success reports whether the call reached the master.
func (o CallOutcome) Success() bool {
	return o == OutcomeSucceeded || o == OutcomeSucceededAfterRetry
}

// RootCause classifies why the engine previously terminated abnormally.
// Recovery actions use it to decide whether they apply.
type RootCause string

const (
	// RootCauseUnknown means the previous termination could not be classified.
	RootCauseUnknown RootCause = "unknown"
	// RootCauseCrash means the engine process terminated abnormally.
	RootCauseCrash RootCause = "crash"
	// RootCauseCorruption means persisted state failed validation.
	RootCauseCorruption RootCause = "corruption"
)
