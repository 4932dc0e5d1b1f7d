package implicit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver is a minimal ResourceResolver for validator tests that
// don't need package resource's full Store.
type fakeResolver struct {
	functions map[uint32]*ImplicitFunction
	other     map[uint32]bool
}

func (r *fakeResolver) ResolveFunction(id uint32) (*ImplicitFunction, bool) {
	f, ok := r.functions[id]
	return f, ok
}

func (r *fakeResolver) Exists(id uint32) bool {
	if _, ok := r.functions[id]; ok {
		return true
	}
	return r.other[id]
}

func TestValidatorDanglingReference(t *testing.T) {
	f := NewFunction(1, "f")
	_, err := f.AddResourceIDNode("rn", "", "", 9999)
	require.NoError(t, err)

	v := &Validator{}
	diags := v.Validate(f, &fakeResolver{})
	require.Len(t, diags, 1)
	assert.Equal(t, KindDanglingReference, diags[0].Kind)
	assert.Equal(t, "rn", diags[0].NodeID)
}

func TestValidatorNoDiagnosticsForValidGraph(t *testing.T) {
	f := NewFunction(1, "f")
	a, _ := f.AddConstantNode("a", "", "", 1)
	b, _ := f.AddConstantNode("b", "", "", 2)
	add, _ := f.AddAdditionNode(Scalar, "add", "", "")
	require.NoError(t, f.AddLink(a.Output("value"), add.Input("A")))
	require.NoError(t, f.AddLink(b.Output("value"), add.Input("B")))

	v := &Validator{}
	diags := v.Validate(f, &fakeResolver{})
	assert.Empty(t, diags)
}

func TestValidatorRequiredInputUnlinked(t *testing.T) {
	f := NewFunction(1, "f")
	_, err := f.AddAdditionNode(Scalar, "add", "", "")
	require.NoError(t, err)

	v := &Validator{}
	diags := v.Validate(f, &fakeResolver{})
	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Equal(t, KindTypeMismatch, d.Kind)
	}
}

func TestValidatorFunctionGradientInvalidSignature(t *testing.T) {
	// Referenced function R only has a Scalar output named "other", not
	// "distance" / the FunctionGradient node's configured scalarOutputName.
	r := NewFunction(2, "R")
	_, err := r.AddInput("pos", "", Vector)
	require.NoError(t, err)
	_, err = r.AddOutput("other", "", Scalar)
	require.NoError(t, err)

	caller := NewFunction(1, "caller")
	fg, err := caller.AddFunctionGradientNode("fg1", "", "")
	require.NoError(t, err)
	require.NoError(t, fg.SetFunctionID(2))
	require.NoError(t, fg.SetScalarOutputName("magnitude"))

	v := &Validator{}
	diags := v.Validate(caller, &fakeResolver{functions: map[uint32]*ImplicitFunction{2: r}})
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Kind == KindInvalidSignature {
			found = true
		}
	}
	assert.True(t, found, "expected an InvalidSignature diagnostic, got %v", diags)
}

func TestValidatorFunctionGradientValidSignature(t *testing.T) {
	r := NewFunction(2, "R")
	_, err := r.AddInput("normalizedgradient", "", Vector)
	require.NoError(t, err)
	_, err = r.AddOutput("magnitude", "", Scalar)
	require.NoError(t, err)

	caller := NewFunction(1, "caller")
	pos, err := caller.AddInput("pos", "", Vector)
	require.NoError(t, err)
	resNode, err := caller.AddResourceIDNode("rid", "", "", 2)
	require.NoError(t, err)
	step, err := caller.AddConstantNode("step", "", "", 0.01)
	require.NoError(t, err)
	fg, err := caller.AddFunctionGradientNode("fg1", "", "")
	require.NoError(t, err)
	require.NoError(t, fg.SetFunctionID(2))
	require.NoError(t, caller.AddLink(resNode.Output("value"), fg.Input("functionid")))
	require.NoError(t, caller.AddLink(pos, fg.Input("pos")))
	require.NoError(t, caller.AddLink(step.Output("value"), fg.Input("step")))

	v := &Validator{}
	diags := v.Validate(caller, &fakeResolver{functions: map[uint32]*ImplicitFunction{2: r}})
	assert.Empty(t, diags)
}

func TestValidatorFunctionCallSignature(t *testing.T) {
	r := NewFunction(8, "R")
	_, err := r.AddInput("shape", "", Vector)
	require.NoError(t, err)
	_, err = r.AddOutput("distance", "", Scalar)
	require.NoError(t, err)

	caller := NewFunction(1, "caller")
	resNode, err := caller.AddResourceIDNode("rid", "", "", 8)
	require.NoError(t, err)
	fc, err := caller.AddFunctionCallNode("fc", "", "", 8,
		[]PortTemplate{{ID: "shape", DisplayName: "shape", Type: Vector}},
		[]PortTemplate{{ID: "distance", DisplayName: "distance", Type: Scalar}})
	require.NoError(t, err)
	require.NoError(t, caller.AddLink(resNode.Output("value"), fc.Input("functionid")))

	resolver := &fakeResolver{functions: map[uint32]*ImplicitFunction{8: r}}
	v := &Validator{}
	assert.Empty(t, v.Validate(caller, resolver))

	// A caller port the referenced function doesn't expose is an
	// InvalidSignature diagnostic.
	fc.Outputs = append(fc.Outputs, &Port{ID: "missing", Type: Scalar, Side: SideNodeOutput, node: fc, function: caller})
	diags := v.Validate(caller, resolver)
	require.NotEmpty(t, diags)
	assert.Equal(t, KindInvalidSignature, diags[0].Kind)
	assert.Equal(t, "missing", diags[0].PortID)
}

func TestValidatorLenientDowngradesSeverity(t *testing.T) {
	r := NewFunction(2, "R")
	caller := NewFunction(1, "caller")
	fg, _ := caller.AddFunctionGradientNode("fg1", "", "")
	require.NoError(t, fg.SetFunctionID(2))

	v := &Validator{Lenient: true}
	diags := v.Validate(caller, &fakeResolver{functions: map[uint32]*ImplicitFunction{2: r}})
	require.NotEmpty(t, diags)
	for _, d := range diags {
		if d.Kind == KindInvalidSignature {
			assert.Equal(t, SeverityWarning, d.Severity)
		}
	}
}
