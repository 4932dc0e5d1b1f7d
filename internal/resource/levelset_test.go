package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threemf-go/implicit/internal/implicit"
)

func TestLevelSetResolve(t *testing.T) {
	s := NewStore()
	fn := implicit.NewFunction(1, "fn")
	_, err := fn.AddOutput("distance", "", implicit.Scalar)
	require.NoError(t, err)
	s.AddFunction(fn)

	ls := LevelSet{FunctionID: 1, Channel: "distance"}
	gotFn, port, err := ls.Resolve(s)
	require.NoError(t, err)
	assert.Same(t, fn, gotFn)
	assert.Equal(t, "distance", port.ID)
}

func TestLevelSetResolveDanglingFunction(t *testing.T) {
	s := NewStore()
	ls := LevelSet{FunctionID: 42, Channel: "distance"}
	_, _, err := ls.Resolve(s)
	var e *implicit.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, implicit.KindDanglingReference, e.Kind)
}

func TestLevelSetResolveWrongType(t *testing.T) {
	s := NewStore()
	fn := implicit.NewFunction(1, "fn")
	_, err := fn.AddOutput("color", "", implicit.Vector)
	require.NoError(t, err)
	s.AddFunction(fn)

	ls := LevelSet{FunctionID: 1, Channel: "color"}
	_, _, err = ls.Resolve(s)
	var e *implicit.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, implicit.KindTypeMismatch, e.Kind)
}

func TestCandidateChannels(t *testing.T) {
	fn := implicit.NewFunction(1, "fn")
	_, _ = fn.AddOutput("distance", "", implicit.Scalar)
	_, _ = fn.AddOutput("other", "", implicit.Scalar)
	_, _ = fn.AddOutput("color", "", implicit.Vector)

	got := CandidateChannels(fn)
	assert.Equal(t, []string{"distance", "other"}, got)
}
