package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/state"
)

func TestStore_ReadAbsentKeyReturnsNil(t *testing.T) {
	s := state.NewStore(t.TempDir())

	data, err := s.Read("plan/snapshot")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	s := state.NewStore(t.TempDir())

	require.NoError(t, s.Write("plan/snapshot", []byte(`{"version":1}`)))

	data, err := s.Read("plan/snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), data)
}

func TestStore_WriteReplacesPreviousValue(t *testing.T) {
	s := state.NewStore(t.TempDir())

	require.NoError(t, s.Write("journal/cursor", []byte("1")))
	require.NoError(t, s.Write("journal/cursor", []byte("2")))

	data, err := s.Read("journal/cursor")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), data)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := state.NewStore(t.TempDir())

	require.NoError(t, s.Write("recovery/plan-cache", []byte("marker")))
	require.NoError(t, s.Delete("recovery/plan-cache"))
	require.NoError(t, s.Delete("recovery/plan-cache"))

	data, err := s.Read("recovery/plan-cache")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_KeysDoNotCollide(t *testing.T) {
	s := state.NewStore(t.TempDir())

	require.NoError(t, s.Write("plan/snapshot", []byte("a")))
	require.NoError(t, s.Write("plan/graph", []byte("b")))

	data, err := s.Read("plan/snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)
}
