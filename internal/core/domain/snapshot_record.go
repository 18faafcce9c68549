package domain

import "go.trai.ch/zerr"

// SnapshotEnvelopeVersion is the current version of the persisted snapshot envelope.
const SnapshotEnvelopeVersion = 1

// SnapshotRecord is the persistence-friendly external form of a Snapshot.
// Paths are rendered as their canonical string form and fingerprints in
// their portable encoding, so records compare across runs even after
// in-memory path identifiers are gone. Readers must preserve order on load;
// downstream diffing assumes it.
type SnapshotRecord struct {
	Version int           `json:"version"`
	Paths   []PathRecord  `json:"paths"`
	Envs    []EnvRecord   `json:"envs"`
	Mounts  []MountRecord `json:"mounts"`
}

// PathRecord is the external form of a PathInput.
type PathRecord struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	Kind        string `json:"kind"`
}

// EnvRecord is the external form of an EnvInput.
type EnvRecord struct {
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

// MountRecord is the external form of a MountInput.
type MountRecord struct {
	Name string  `json:"name"`
	Path *string `json:"path"`
}

// ToRecord converts the snapshot to its external form, preserving order.
func (s *Snapshot) ToRecord() SnapshotRecord {
	rec := SnapshotRecord{Version: SnapshotEnvelopeVersion}

	rec.Paths = make([]PathRecord, len(s.PathInputs))
	for i, p := range s.PathInputs {
		rec.Paths[i] = PathRecord{
			Path:        p.Path,
			Fingerprint: p.Fingerprint.String(),
			Kind:        p.Kind.String(),
		}
	}

	rec.Envs = make([]EnvRecord, len(s.EnvInputs))
	for i, e := range s.EnvInputs {
		rec.Envs[i] = EnvRecord{Name: e.Name, Value: e.Value}
	}

	rec.Mounts = make([]MountRecord, len(s.MountInputs))
	for i, m := range s.MountInputs {
		rec.Mounts[i] = MountRecord{Name: m.Name, Path: m.Path}
	}

	return rec
}

// SnapshotFromRecord converts the external form back to a snapshot. The
// conversion is lossless; it validates the envelope version and that every
// sequence is still in its required sort order, since diffing never re-sorts.
func SnapshotFromRecord(rec SnapshotRecord) (*Snapshot, error) {
	if rec.Version != SnapshotEnvelopeVersion {
		return nil, zerr.With(ErrSnapshotVersion, "version", rec.Version)
	}

	s := &Snapshot{}

	if len(rec.Paths) > 0 {
		s.PathInputs = make([]PathInput, len(rec.Paths))
		for i, p := range rec.Paths {
			fp, err := ParseFingerprint(p.Fingerprint)
			if err != nil {
				return nil, err
			}
			kind := KindContent
			if p.Kind == KindMembership.String() {
				kind = KindMembership
			}
			s.PathInputs[i] = PathInput{Path: p.Path, Fingerprint: fp, Kind: kind}
		}
	}

	if len(rec.Envs) > 0 {
		s.EnvInputs = make([]EnvInput, len(rec.Envs))
		for i, e := range rec.Envs {
			s.EnvInputs[i] = EnvInput{Name: e.Name, Value: e.Value}
		}
	}

	if len(rec.Mounts) > 0 {
		s.MountInputs = make([]MountInput, len(rec.Mounts))
		for i, m := range rec.Mounts {
			s.MountInputs[i] = MountInput{Name: m.Name, Path: m.Path}
		}
	}

	if !isSorted(s.PathInputs, comparePathInputs) ||
		!isSorted(s.EnvInputs, compareEnvInputs) ||
		!isSorted(s.MountInputs, compareMountInputs) {
		return nil, ErrSnapshotUnsorted
	}

	return s, nil
}

func isSorted[T any](in []T, cmp func(T, T) int) bool {
	for i := 1; i < len(in); i++ {
		if cmp(in[i-1], in[i]) >= 0 {
			return false
		}
	}
	return true
}
