package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threemf-go/implicit/internal/implicit"
)

func TestStoreResolveFunction(t *testing.T) {
	s := NewStore()
	fn := implicit.NewFunction(5, "fn")
	s.AddFunction(fn)

	got, ok := s.ResolveFunction(5)
	require.True(t, ok)
	assert.Same(t, fn, got)

	_, ok = s.ResolveFunction(6)
	assert.False(t, ok)
}

func TestStoreExists(t *testing.T) {
	s := NewStore()
	s.AddMesh(1)
	s.AddBeamLattice(2)
	assert.True(t, s.Exists(1))
	assert.True(t, s.Exists(2))
	assert.False(t, s.Exists(3))
}

func TestStoreDoesNotResolveNonFunctionAsFunction(t *testing.T) {
	s := NewStore()
	s.AddMesh(1)
	_, ok := s.ResolveFunction(1)
	assert.False(t, ok, "a mesh resource must not resolve as a function")
}

func TestNewSyntheticIDIsUniqueAndNonZero(t *testing.T) {
	s := NewStore()
	seen := make(map[uint32]bool)
	for i := 0; i < 50; i++ {
		id := s.NewSyntheticID()
		require.NotZero(t, id)
		require.False(t, seen[id], "synthetic id collided: %d", id)
		seen[id] = true
		s.AddMesh(id)
	}
}

func TestFunctionsListsOnlyFunctionResources(t *testing.T) {
	s := NewStore()
	s.AddMesh(1)
	fn := implicit.NewFunction(2, "fn")
	s.AddFunction(fn)
	fns := s.Functions()
	require.Len(t, fns, 1)
	assert.Equal(t, uint32(2), fns[0].ResourceID)
}
