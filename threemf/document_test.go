package threemf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threemf-go/implicit/threemf"
)

// TestPublicRoundTrip exercises the public threemf package end to end:
// build a function with the graph API, serialize, and re-parse, all
// through the exported surface rather than the internal packages.
func TestPublicRoundTrip(t *testing.T) {
	fn := threemf.NewFunction(10, "density")
	pos, err := fn.AddInput("pos", "pos", threemf.Vector)
	require.NoError(t, err)
	_, err = fn.AddOutput("density", "density", threemf.Scalar)
	require.NoError(t, err)

	sig, ok := threemf.LookupSignature(threemf.OpSin)
	require.True(t, ok)
	require.NotEmpty(t, sig.Configs)

	var sb strings.Builder
	require.NoError(t, threemf.WriteFunctionTo(&sb, fn, threemf.WriteOptions{}))
	_ = pos

	fn2, warnings, err := threemf.ReadFunctionFrom(strings.NewReader(sb.String()), threemf.ReadOptions{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, fn.ResourceID, fn2.ResourceID)
	assert.Len(t, fn2.Inputs, 1)
	assert.Len(t, fn2.Outputs, 1)
}

func TestPublicValidatorUnsetResourceIDNotDangling(t *testing.T) {
	fn := threemf.NewFunction(1, "f")
	_, err := fn.AddNode(threemf.OpConstResourceID, "r", "", "")
	require.NoError(t, err)

	store := threemf.NewStore()
	v := &threemf.Validator{}
	diags := v.Validate(fn, store)
	// The ConstResourceID node has no literal value set at all, so the
	// reference-resolution check has nothing to look up and reports no
	// DanglingReference for it.
	assert.Empty(t, diags)
}

func TestPublicLevelSetResolve(t *testing.T) {
	fn := threemf.NewFunction(3, "shape")
	_, err := fn.AddOutput("distance", "", threemf.Scalar)
	require.NoError(t, err)

	store := threemf.NewStore()
	store.AddFunction(fn)

	ls := threemf.LevelSet{FunctionID: 3, Channel: "distance"}
	gotFn, port, err := ls.Resolve(store)
	require.NoError(t, err)
	assert.Equal(t, fn.ResourceID, gotFn.ResourceID)
	assert.Equal(t, "distance", port.ID)
}
