package domain

import (
	"slices"
	"strings"
)

// PathKind distinguishes the two observations recorded per path.
type PathKind uint8

const (
	// KindContent records that a path's content influenced plan construction.
	KindContent PathKind = iota
	// KindMembership records that a directory's enumeration influenced plan construction.
	KindMembership
)

// String returns the envelope encoding of the kind.
func (k PathKind) String() string {
	if k == KindMembership {
		return "membership"
	}
	return "content"
}

// PathInput is one observed filesystem input.
type PathInput struct {
	Path        string
	Fingerprint Fingerprint
	Kind        PathKind
}

// EnvInput is one observed environment variable. A nil Value records that the
// variable was read and found absent.
type EnvInput struct {
	Name  string
	Value *string
}

// MountInput is one observed mount. A nil Path records that the mount was
// looked up and found unresolved.
type MountInput struct {
	Name string
	Path *string
}

// Snapshot is an immutable, sorted record of every input that influenced
// construction of a build plan. All three sequences are kept sorted at all
// times; equality and difference assume sortedness and never re-sort.
// Snapshots are value types with no shared mutable state and may be passed
// across goroutines freely.
type Snapshot struct {
	PathInputs  []PathInput
	EnvInputs   []EnvInput
	MountInputs []MountInput
}

// comparePathInputs orders path inputs by (path, kind).
func comparePathInputs(a, b PathInput) int {
	if c := strings.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	return int(a.Kind) - int(b.Kind)
}

// compareFold orders names case-insensitively, with a case-sensitive
// tie-break so the order is total.
func compareFold(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if c := strings.Compare(la, lb); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareEnvInputs(a, b EnvInput) int {
	return compareFold(a.Name, b.Name)
}

func compareMountInputs(a, b MountInput) int {
	return compareFold(a.Name, b.Name)
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalPathInputs(a, b PathInput) bool {
	return a.Path == b.Path && a.Kind == b.Kind && a.Fingerprint == b.Fingerprint
}

func equalEnvInputs(a, b EnvInput) bool {
	return a.Name == b.Name && equalPtr(a.Value, b.Value)
}

func equalMountInputs(a, b MountInput) bool {
	return a.Name == b.Name && equalPtr(a.Path, b.Path)
}

// exceptSorted computes the elements of a absent from b. Both slices must be
// sorted under cmp with unique keys. It is a single linear merge; the result
// preserves a's order. An element whose key matches but whose payload differs
// counts as absent.
func exceptSorted[T any](a, b []T, cmp func(T, T) int, eq func(T, T) bool) []T {
	var out []T
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp(a[i], b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			j++
		default:
			if !eq(a[i], b[j]) {
				out = append(out, a[i])
			}
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return out
}

// Except returns a new snapshot containing the elements of each sequence that
// are absent from the corresponding sequence in other. Inputs are never
// reordered or mutated.
func (s *Snapshot) Except(other *Snapshot) *Snapshot {
	return &Snapshot{
		PathInputs:  exceptSorted(s.PathInputs, other.PathInputs, comparePathInputs, equalPathInputs),
		EnvInputs:   exceptSorted(s.EnvInputs, other.EnvInputs, compareEnvInputs, equalEnvInputs),
		MountInputs: exceptSorted(s.MountInputs, other.MountInputs, compareMountInputs, equalMountInputs),
	}
}

// IsEmpty reports whether all three sequences are empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.PathInputs) == 0 && len(s.EnvInputs) == 0 && len(s.MountInputs) == 0
}

// EmptySnapshot returns a snapshot with no observations. It is sorted under
// the same comparers as every other snapshot, so comparing against it is a
// pure length check.
func EmptySnapshot() *Snapshot {
	return &Snapshot{}
}

// SnapshotBuilder accumulates unsorted observations during evaluation and
// seals them into a sorted snapshot exactly once. It is single-writer: one
// evaluation pass owns a builder.
type SnapshotBuilder struct {
	paths  []PathInput
	envs   []EnvInput
	mounts []MountInput
	sealed bool
}

// NewSnapshotBuilder creates an empty builder.
func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{}
}

// ObservePath records a filesystem observation.
func (b *SnapshotBuilder) ObservePath(path string, fp Fingerprint, kind PathKind) error {
	if b.sealed {
		return ErrSnapshotSealed
	}
	b.paths = append(b.paths, PathInput{Path: path, Fingerprint: fp, Kind: kind})
	return nil
}

// ObserveEnv records an environment variable observation.
func (b *SnapshotBuilder) ObserveEnv(name string, value *string) error {
	if b.sealed {
		return ErrSnapshotSealed
	}
	b.envs = append(b.envs, EnvInput{Name: name, Value: value})
	return nil
}

// ObserveMount records a mount observation.
func (b *SnapshotBuilder) ObserveMount(name string, path *string) error {
	if b.sealed {
		return ErrSnapshotSealed
	}
	b.mounts = append(b.mounts, MountInput{Name: name, Path: path})
	return nil
}

// Seal sorts and deduplicates the observations and returns the immutable
// snapshot. Later observations of the same key win. The builder rejects
// further use after sealing.
func (b *SnapshotBuilder) Seal() (*Snapshot, error) {
	if b.sealed {
		return nil, ErrSnapshotSealed
	}
	b.sealed = true

	return &Snapshot{
		PathInputs:  dedupSorted(b.paths, comparePathInputs),
		EnvInputs:   dedupSorted(b.envs, compareEnvInputs),
		MountInputs: dedupSorted(b.mounts, compareMountInputs),
	}, nil
}

// dedupSorted stable-sorts the slice and keeps the last observation per key.
func dedupSorted[T any](in []T, cmp func(T, T) int) []T {
	if len(in) == 0 {
		return nil
	}
	sorted := slices.Clone(in)
	slices.SortStableFunc(sorted, cmp)

	out := sorted[:0]
	for i := range sorted {
		if i+1 < len(sorted) && cmp(sorted[i], sorted[i+1]) == 0 {
			continue
		}
		out = append(out, sorted[i])
	}
	return slices.Clip(out)
}
