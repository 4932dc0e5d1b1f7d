package implicit

import (
	"errors"
	"testing"
)

func TestAddInputDuplicateIdentifier(t *testing.T) {
	f := NewFunction(1, "f")
	if _, err := f.AddInput("pos", "pos", Vector); err != nil {
		t.Fatalf("first AddInput: %v", err)
	}
	_, err := f.AddInput("pos", "pos2", Scalar)
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Fatalf("want ErrDuplicateIdentifier, got %v", err)
	}
}

func TestAddNodeDuplicateIdentifier(t *testing.T) {
	f := NewFunction(1, "f")
	if _, err := f.AddConstantNode("x", "x", "", 1); err != nil {
		t.Fatalf("first AddConstantNode: %v", err)
	}
	_, err := f.AddConstantNode("x", "x2", "", 2)
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Fatalf("want ErrDuplicateIdentifier, got %v", err)
	}
	if len(f.Nodes) != 1 {
		t.Fatalf("first node should remain after duplicate failure, got %d nodes", len(f.Nodes))
	}
}

func TestAddLinkTypeMismatch(t *testing.T) {
	f := NewFunction(1, "f")
	scalarC, _ := f.AddConstantNode("c", "c", "", 1)
	add, _ := f.AddAdditionNode(Vector, "add", "add", "")

	err := f.AddLink(scalarC.Output("value"), add.Input("A"))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch, got %v", err)
	}
}

func TestAddLinkAlreadyLinked(t *testing.T) {
	f := NewFunction(1, "f")
	c1, _ := f.AddConstantNode("c1", "", "", 1)
	c2, _ := f.AddConstantNode("c2", "", "", 2)
	add, _ := f.AddAdditionNode(Scalar, "add", "", "")

	if err := f.AddLink(c1.Output("value"), add.Input("A")); err != nil {
		t.Fatalf("first link: %v", err)
	}
	err := f.AddLink(c2.Output("value"), add.Input("A"))
	if !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("want ErrAlreadyLinked, got %v", err)
	}
}

func TestAddLinkCrossFunction(t *testing.T) {
	a := NewFunction(1, "a")
	b := NewFunction(2, "b")
	ca, _ := a.AddConstantNode("c", "", "", 1)
	addB, _ := b.AddAdditionNode(Scalar, "add", "", "")

	err := a.AddLink(ca.Output("value"), addB.Input("A"))
	if !errors.Is(err, ErrCrossFunction) {
		t.Fatalf("want ErrCrossFunction, got %v", err)
	}
	if len(a.Nodes) != 1 || len(b.Nodes) != 1 {
		t.Fatalf("neither function should gain nodes from a failed cross-function link")
	}
}

func TestConfiguredNodeRejectsDisallowedConfig(t *testing.T) {
	f := NewFunction(1, "f")
	_, err := f.AddConfiguredNode(OpMod, Matrix, "m", "", "")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch for Mod/Matrix, got %v", err)
	}
}

func TestOutputsByType(t *testing.T) {
	f := NewFunction(1, "f")
	if _, err := f.AddOutput("distance", "distance", Scalar); err != nil {
		t.Fatal(err)
	}
	if _, err := f.AddOutput("color", "color", Vector); err != nil {
		t.Fatal(err)
	}
	scalars := f.OutputsByType(Scalar)
	if len(scalars) != 1 || scalars[0].ID != "distance" {
		t.Fatalf("want [distance], got %v", scalars)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	f := NewFunction(1, "f")
	ids := []string{"n1", "n2", "n3"}
	for _, id := range ids {
		if _, err := f.AddConstantNode(id, "", "", 0); err != nil {
			t.Fatal(err)
		}
	}
	for i, n := range f.Nodes {
		if n.Identifier != ids[i] {
			t.Fatalf("node order mismatch at %d: want %s got %s", i, ids[i], n.Identifier)
		}
		if n.GraphID != uint64(i) {
			t.Fatalf("graph id at %d: want %d got %d", i, i, n.GraphID)
		}
	}
}
