package domain

import (
	"fmt"
	"strconv"

	"go.trai.ch/zerr"
)

// Fingerprint is a comparable content hash of an observed input.
// The zero value means "no content" (e.g. a membership-only observation).
type Fingerprint uint64

// String returns the portable encoding used in the persisted envelope.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// ParseFingerprint decodes the portable encoding produced by String.
func ParseFingerprint(s string) (Fingerprint, error) {
	if len(s) != 16 {
		return 0, zerr.With(ErrInvalidFingerprint, "value", s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, zerr.With(ErrInvalidFingerprint, "value", s)
	}
	return Fingerprint(v), nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fingerprint) UnmarshalText(text []byte) error {
	v, err := ParseFingerprint(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
