// Package retry provides the backoff policy applied to transient failures of
// remote worker calls.
package retry

import (
	"time"

	"go.trai.ch/zerr"
)

// BackoffMode selects how the delay grows between retries.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

var (
	ErrInitialNotPositive = zerr.New("retry initial delay must be positive")
	ErrMaxNotPositive     = zerr.New("retry max delay must be positive")
	ErrNegativeRetries    = zerr.New("retry count cannot be negative")
)

// Policy encapsulates backoff settings for transient failures. It is
// immutable after construction.
type Policy struct {
	Mode       BackoffMode
	Initial    time.Duration
	Max        time.Duration
	MaxRetries int
}

// DefaultPolicy is linear backoff, 1s initial, 30s cap, 2 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: BackoffLinear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 2}
}

// NewPolicy builds a policy from raw config fields; zero or unknown values
// fall back to defaults, and the initial delay is clamped to the cap.
func NewPolicy(mode BackoffMode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	switch mode {
	case BackoffFixed, BackoffLinear, BackoffExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the backoff delay before the given retry (1-based: the first
// retry is 1). Non-positive counts yield zero.
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	switch p.Mode {
	case BackoffFixed:
		return p.Initial
	case BackoffExponential:
		d := p.Initial * (1 << (retryCount - 1))
		if d > p.Max {
			return p.Max
		}
		return d
	default: // linear
		d := time.Duration(retryCount) * p.Initial
		if d > p.Max {
			return p.Max
		}
		return d
	}
}

// Validate reports whether the policy can be applied.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return ErrInitialNotPositive
	}
	if p.Max <= 0 {
		return ErrMaxNotPositive
	}
	if p.MaxRetries < 0 {
		return ErrNegativeRetries
	}
	return nil
}
