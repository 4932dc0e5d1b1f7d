package implicit

import "testing"

func TestLookupSignatureKnownOpcodes(t *testing.T) {
	for _, op := range []Opcode{
		OpConstant, OpConstVec, OpConstMat, OpConstResourceID,
		OpAddition, OpMod, OpPow, OpSin, OpDot, OpCross, OpMatVecMul,
		OpSelect, OpClamp, OpFunctionCall, OpBeamLattice,
		OpFunctionGradient, OpNormalizeDistance,
	} {
		if _, ok := LookupSignature(op); !ok {
			t.Errorf("catalog missing entry for opcode %s", op)
		}
	}
}

func TestOpcodesCoversCatalog(t *testing.T) {
	ops := Opcodes()
	if len(ops) != len(catalog) {
		t.Fatalf("Opcodes() returned %d opcodes, catalog has %d entries", len(ops), len(catalog))
	}
	for _, op := range ops {
		if _, ok := LookupSignature(op); !ok {
			t.Errorf("Opcodes() returned %s without a catalog entry", op)
		}
	}
}

func TestSignatureAllowsConfig(t *testing.T) {
	sig, ok := LookupSignature(OpAddition)
	if !ok {
		t.Fatal("missing Addition signature")
	}
	for _, want := range []PortType{Scalar, Vector, Matrix} {
		if !sig.AllowsConfig(want) {
			t.Errorf("Addition should allow config %s", want)
		}
	}
	if sig.AllowsConfig(ResourceID) {
		t.Errorf("Addition must not allow ResourceID config")
	}
}

func TestSignatureHasExtra(t *testing.T) {
	sig, _ := LookupSignature(OpBeamLattice)
	if !sig.HasExtra(ExtraAccurateRange) {
		t.Errorf("BeamLattice should allow ExtraAccurateRange")
	}
	if sig.HasExtra(ExtraConstant) {
		t.Errorf("BeamLattice must not allow ExtraConstant")
	}
}

func TestFunctionCallSignatureIsDynamic(t *testing.T) {
	sig, ok := LookupSignature(OpFunctionCall)
	if !ok || !sig.Dynamic {
		t.Fatalf("FunctionCall must be marked Dynamic")
	}
}

func TestOpcodeElementNameRoundTrip(t *testing.T) {
	for op, name := range elementNames {
		got, ok := OpcodeByElement(name)
		if !ok || got != op {
			t.Errorf("OpcodeByElement(%q) = %v, %v; want %v, true", name, got, ok, op)
		}
	}
}
