// Package journal implements change-journal classification: it turns the raw
// event stream of the change-tracking source into the working set the graph
// reuse decision consumes.
package journal

import (
	"sort"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

// PathSet is either a concrete (possibly empty) set of paths, meaning the
// scan produced a reliable, bounded result, or Unknown, meaning every path
// must be treated as changed. Membership is case-insensitive.
type PathSet struct {
	unknown bool
	paths   map[string]struct{}
}

// UnknownPathSet returns the sentinel set that treats everything as changed.
func UnknownPathSet() PathSet {
	return PathSet{unknown: true}
}

func concretePathSet(paths map[string]struct{}) PathSet {
	return PathSet{paths: paths}
}

// IsUnknown reports whether the set is the "treat everything as changed" sentinel.
func (s PathSet) IsUnknown() bool {
	return s.unknown
}

// IsEmpty reports whether the set is concrete and empty.
func (s PathSet) IsEmpty() bool {
	return !s.unknown && len(s.paths) == 0
}

// Contains reports membership. An unknown set contains every path.
func (s PathSet) Contains(path string) bool {
	if s.unknown {
		return true
	}
	_, ok := s.paths[foldPath(path)]
	return ok
}

// Paths returns the sorted folded members of a concrete set, nil when unknown.
func (s PathSet) Paths() []string {
	if s.unknown || len(s.paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func foldPath(p string) string {
	return strings.ToLower(p)
}

// Result is the finalized classifier state. Its fields are read-only for the
// remainder of the classification pass.
type Result struct {
	// PossiblyChanged holds paths whose content or identity possibly changed.
	PossiblyChanged PathSet
	// ChangedDirs holds paths whose directory membership changed.
	ChangedDirs PathSet
}

// HaveNoChanges reports that scanning completed reliably and enumerated no
// changes. Any unknown state makes this false.
func (r Result) HaveNoChanges() bool {
	return r.PossiblyChanged.IsEmpty() && r.ChangedDirs.IsEmpty()
}

// Unreliable reports that either set is in the unknown state.
func (r Result) Unreliable() bool {
	return r.PossiblyChanged.IsUnknown() || r.ChangedDirs.IsUnknown()
}

// UnknownResult is the fully conservative result: both sets unknown.
func UnknownResult() Result {
	return Result{PossiblyChanged: UnknownPathSet(), ChangedDirs: UnknownPathSet()}
}

// Classifier consumes one bounded scan's events and classifies them. It is
// single-writer: exactly one classification pass owns an instance from
// construction to Finalize.
type Classifier struct {
	projected       []string
	possiblyChanged map[string]struct{}
	changedDirs     map[string]struct{}
	eventLimit      int
	overflowed      bool
	finalized       bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithProjectedDirs configures the externally-projected directory roots whose
// change invalidates confidence in the enumerated change set.
func WithProjectedDirs(dirs []string) Option {
	return func(c *Classifier) {
		for _, d := range dirs {
			c.projected = append(c.projected, foldPath(d))
		}
	}
}

// WithEventLimit bounds the number of classified events; exceeding the limit
// finalizes to unknown. Zero means unbounded.
func WithEventLimit(limit int) Option {
	return func(c *Classifier) {
		c.eventLimit = limit
	}
}

// NewClassifier creates a classifier for one scan pass.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		possiblyChanged: make(map[string]struct{}),
		changedDirs:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe classifies one change event.
func (c *Classifier) Observe(ev ports.ChangeEvent) error {
	if c.finalized {
		return domain.ErrClassifierFinalized
	}
	if c.overflowed {
		return nil
	}

	switch ev.Kind {
	case ports.ChangeMembership:
		c.changedDirs[foldPath(ev.Path)] = struct{}{}
	case ports.ChangePath:
		c.possiblyChanged[foldPath(ev.Path)] = struct{}{}
	case ports.ChangeIdentity:
		// Rename-tracking information for a different consumer.
	}

	if c.eventLimit > 0 && len(c.possiblyChanged)+len(c.changedDirs) > c.eventLimit {
		c.overflowed = true
	}
	return nil
}

// Finalize applies the scan verdict and returns the read-only result. It may
// be called exactly once. If the scan did not succeed, or a projected
// directory appears changed, or the event limit was exceeded, both sets
// collapse to unknown: a partial or unreliable scan invalidates confidence in
// the enumerated change set, so the caller must fall back to checking every
// graph input explicitly.
func (c *Classifier) Finalize(verdict ports.ScanResult) (Result, error) {
	if c.finalized {
		return Result{}, domain.ErrClassifierFinalized
	}
	c.finalized = true

	if !verdict.Succeeded || c.overflowed || c.projectionChanged() {
		return UnknownResult(), nil
	}

	return Result{
		PossiblyChanged: concretePathSet(c.possiblyChanged),
		ChangedDirs:     concretePathSet(c.changedDirs),
	}, nil
}

// projectionChanged reports whether any classified path lies under a
// projected root (case-insensitive prefix match). A change anywhere inside a
// projection means the enumerated diff may be incomplete.
func (c *Classifier) projectionChanged() bool {
	for _, dir := range c.projected {
		for p := range c.possiblyChanged {
			if underRoot(p, dir) {
				return true
			}
		}
		for p := range c.changedDirs {
			if underRoot(p, dir) {
				return true
			}
		}
	}
	return false
}

// underRoot reports whether folded path p is root itself or lies below it.
func underRoot(p, root string) bool {
	return p == root || strings.HasPrefix(p, root+"/")
}
