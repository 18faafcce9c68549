package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func strptr(s string) *string { return &s }

func buildSnapshot(t *testing.T, paths []domain.PathInput, envs []domain.EnvInput, mounts []domain.MountInput) *domain.Snapshot {
	t.Helper()
	b := domain.NewSnapshotBuilder()
	for _, p := range paths {
		require.NoError(t, b.ObservePath(p.Path, p.Fingerprint, p.Kind))
	}
	for _, e := range envs {
		require.NoError(t, b.ObserveEnv(e.Name, e.Value))
	}
	for _, m := range mounts {
		require.NoError(t, b.ObserveMount(m.Name, m.Path))
	}
	snap, err := b.Seal()
	require.NoError(t, err)
	return snap
}

func TestSnapshotBuilder_SortsAndDeduplicates(t *testing.T) {
	snap := buildSnapshot(t,
		[]domain.PathInput{
			{Path: "/src/b.txt", Fingerprint: 2, Kind: domain.KindContent},
			{Path: "/src/a.txt", Fingerprint: 1, Kind: domain.KindContent},
			{Path: "/src/a.txt", Fingerprint: 9, Kind: domain.KindContent}, // later observation wins
			{Path: "/src/a.txt", Fingerprint: 0, Kind: domain.KindMembership},
		},
		[]domain.EnvInput{
			{Name: "PATH", Value: strptr("/bin")},
			{Name: "Foo", Value: strptr("1")},
		},
		nil,
	)

	require.Len(t, snap.PathInputs, 3)
	assert.Equal(t, "/src/a.txt", snap.PathInputs[0].Path)
	assert.Equal(t, domain.KindContent, snap.PathInputs[0].Kind)
	assert.Equal(t, domain.Fingerprint(9), snap.PathInputs[0].Fingerprint)
	assert.Equal(t, domain.KindMembership, snap.PathInputs[1].Kind)
	assert.Equal(t, "/src/b.txt", snap.PathInputs[2].Path)

	// Env names sort case-insensitively.
	require.Len(t, snap.EnvInputs, 2)
	assert.Equal(t, "Foo", snap.EnvInputs[0].Name)
	assert.Equal(t, "PATH", snap.EnvInputs[1].Name)
}

func TestSnapshotBuilder_SealTwice(t *testing.T) {
	b := domain.NewSnapshotBuilder()
	_, err := b.Seal()
	require.NoError(t, err)

	_, err = b.Seal()
	require.ErrorIs(t, err, domain.ErrSnapshotSealed)
	require.ErrorIs(t, b.ObservePath("/x", 0, domain.KindContent), domain.ErrSnapshotSealed)
	require.ErrorIs(t, b.ObserveEnv("X", nil), domain.ErrSnapshotSealed)
	require.ErrorIs(t, b.ObserveMount("m", nil), domain.ErrSnapshotSealed)
}

func TestSnapshot_Except(t *testing.T) {
	a := buildSnapshot(t,
		[]domain.PathInput{
			{Path: "/src/a.txt", Fingerprint: 1, Kind: domain.KindContent},
			{Path: "/src/b.txt", Fingerprint: 2, Kind: domain.KindContent},
			{Path: "/src/c.txt", Fingerprint: 3, Kind: domain.KindContent},
		},
		[]domain.EnvInput{{Name: "FOO", Value: strptr("bar")}},
		[]domain.MountInput{{Name: "out", Path: strptr("/mnt/out")}},
	)
	b := buildSnapshot(t,
		[]domain.PathInput{
			{Path: "/src/b.txt", Fingerprint: 2, Kind: domain.KindContent},
			{Path: "/src/c.txt", Fingerprint: 4, Kind: domain.KindContent}, // same key, new fingerprint
		},
		nil,
		[]domain.MountInput{{Name: "out", Path: strptr("/mnt/out")}},
	)

	diff := a.Except(b)
	require.Len(t, diff.PathInputs, 2)
	assert.Equal(t, "/src/a.txt", diff.PathInputs[0].Path)
	assert.Equal(t, "/src/c.txt", diff.PathInputs[1].Path)
	require.Len(t, diff.EnvInputs, 1)
	assert.Equal(t, "FOO", diff.EnvInputs[0].Name)
	assert.Empty(t, diff.MountInputs)
}

func TestSnapshot_ExceptSelfIsEmpty(t *testing.T) {
	a := buildSnapshot(t,
		[]domain.PathInput{
			{Path: "/src/a.txt", Fingerprint: 1, Kind: domain.KindContent},
			{Path: "/src/d", Fingerprint: 7, Kind: domain.KindMembership},
		},
		[]domain.EnvInput{{Name: "CC", Value: nil}},
		nil,
	)

	assert.True(t, a.Except(a).IsEmpty())
}

func TestSnapshot_ExceptAgainstEmptyIsLengthCheck(t *testing.T) {
	a := buildSnapshot(t,
		[]domain.PathInput{{Path: "/src/a.txt", Fingerprint: 1, Kind: domain.KindContent}},
		nil, nil,
	)
	empty := domain.EmptySnapshot()

	assert.True(t, empty.IsEmpty())
	assert.Equal(t, a.PathInputs, a.Except(empty).PathInputs)
	assert.True(t, empty.Except(a).IsEmpty())
}

func TestSnapshot_AbsentValueDiffersFromPresent(t *testing.T) {
	a := buildSnapshot(t, nil, []domain.EnvInput{{Name: "FOO", Value: nil}}, nil)
	b := buildSnapshot(t, nil, []domain.EnvInput{{Name: "FOO", Value: strptr("")}}, nil)

	// Read-and-found-absent is a different observation than an empty value.
	assert.False(t, a.Except(b).IsEmpty())
	assert.False(t, b.Except(a).IsEmpty())
}

func TestSnapshotRecord_Roundtrip(t *testing.T) {
	snap := buildSnapshot(t,
		[]domain.PathInput{
			{Path: "/src/a.txt", Fingerprint: 0xdeadbeef, Kind: domain.KindContent},
			{Path: "/src/lib", Fingerprint: 0x1234, Kind: domain.KindMembership},
		},
		[]domain.EnvInput{{Name: "FOO", Value: strptr("bar")}, {Name: "GONE", Value: nil}},
		[]domain.MountInput{{Name: "out", Path: strptr("/mnt/out")}},
	)

	rec := snap.ToRecord()
	require.Equal(t, domain.SnapshotEnvelopeVersion, rec.Version)
	assert.Equal(t, "00000000deadbeef", rec.Paths[0].Fingerprint)
	assert.Equal(t, "membership", rec.Paths[1].Kind)

	back, err := domain.SnapshotFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, snap, back)
}

func TestSnapshotFromRecord_RejectsBadEnvelopes(t *testing.T) {
	tests := []struct {
		name    string
		rec     domain.SnapshotRecord
		wantErr error
	}{
		{
			name:    "wrong version",
			rec:     domain.SnapshotRecord{Version: 2},
			wantErr: domain.ErrSnapshotVersion,
		},
		{
			name: "unsorted paths",
			rec: domain.SnapshotRecord{
				Version: domain.SnapshotEnvelopeVersion,
				Paths: []domain.PathRecord{
					{Path: "/b", Fingerprint: "0000000000000001", Kind: "content"},
					{Path: "/a", Fingerprint: "0000000000000002", Kind: "content"},
				},
			},
			wantErr: domain.ErrSnapshotUnsorted,
		},
		{
			name: "duplicate env name",
			rec: domain.SnapshotRecord{
				Version: domain.SnapshotEnvelopeVersion,
				Envs:    []domain.EnvRecord{{Name: "X"}, {Name: "X"}},
			},
			wantErr: domain.ErrSnapshotUnsorted,
		},
		{
			name: "bad fingerprint",
			rec: domain.SnapshotRecord{
				Version: domain.SnapshotEnvelopeVersion,
				Paths:   []domain.PathRecord{{Path: "/a", Fingerprint: "zz", Kind: "content"}},
			},
			wantErr: domain.ErrInvalidFingerprint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.SnapshotFromRecord(tt.rec)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
