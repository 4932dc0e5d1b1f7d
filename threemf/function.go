package threemf

import (
	"github.com/threemf-go/implicit/internal/implicit"
)

// ImplicitFunction is a named resource: an ordered DAG of Nodes connected
// by typed Links, plus ordered function-level input and output ports.
type ImplicitFunction = implicit.ImplicitFunction

// Node is one vertex in an implicit function's graph.
type Node = implicit.Node

// Port is a typed endpoint on a Node or on a function's own input/output
// list.
type Port = implicit.Port

// Opcode identifies a node's operation.
type Opcode = implicit.Opcode

// PortType is the semantic type carried by a Port: Scalar, Vector, Matrix,
// or ResourceID.
type PortType = implicit.PortType

// PortType values.
const (
	Scalar     = implicit.Scalar
	Vector     = implicit.Vector
	Matrix     = implicit.Matrix
	ResourceID = implicit.ResourceID
)

// Opcode values, re-exported for callers building functions
// programmatically without a dependency on internal/implicit. Every
// cataloged opcode appears here; Opcodes returns the same set as a
// slice.
const (
	OpConstant        = implicit.OpConstant
	OpConstVec        = implicit.OpConstVec
	OpConstMat        = implicit.OpConstMat
	OpConstResourceID = implicit.OpConstResourceID

	OpAddition       = implicit.OpAddition
	OpSubtraction    = implicit.OpSubtraction
	OpMultiplication = implicit.OpMultiplication
	OpDivision       = implicit.OpDivision
	OpMin            = implicit.OpMin
	OpMax            = implicit.OpMax
	OpMod            = implicit.OpMod
	OpPow            = implicit.OpPow

	OpSin   = implicit.OpSin
	OpCos   = implicit.OpCos
	OpTan   = implicit.OpTan
	OpASin  = implicit.OpASin
	OpACos  = implicit.OpACos
	OpATan  = implicit.OpATan
	OpExp   = implicit.OpExp
	OpLog   = implicit.OpLog
	OpLog2  = implicit.OpLog2
	OpSqrt  = implicit.OpSqrt
	OpAbs   = implicit.OpAbs
	OpFloor = implicit.OpFloor
	OpCeil  = implicit.OpCeil
	OpRound = implicit.OpRound
	OpSign  = implicit.OpSign
	OpFract = implicit.OpFract
	OpNeg   = implicit.OpNeg

	OpComposeVector   = implicit.OpComposeVector
	OpDecomposeVector = implicit.OpDecomposeVector
	OpComposeMatrix   = implicit.OpComposeMatrix
	OpDecomposeMatrix = implicit.OpDecomposeMatrix

	OpDot       = implicit.OpDot
	OpCross     = implicit.OpCross
	OpLength    = implicit.OpLength
	OpMatVecMul = implicit.OpMatVecMul
	OpMatMatMul = implicit.OpMatMatMul
	OpTranspose = implicit.OpTranspose
	OpInverse   = implicit.OpInverse

	OpSelect = implicit.OpSelect
	OpClamp  = implicit.OpClamp

	OpAnd       = implicit.OpAnd
	OpOr        = implicit.OpOr
	OpXor       = implicit.OpXor
	OpNot       = implicit.OpNot
	OpLess      = implicit.OpLess
	OpLessEq    = implicit.OpLessEq
	OpGreater   = implicit.OpGreater
	OpGreaterEq = implicit.OpGreaterEq
	OpEq        = implicit.OpEq
	OpNeq       = implicit.OpNeq

	OpFunctionCall      = implicit.OpFunctionCall
	OpBeamLattice       = implicit.OpBeamLattice
	OpFunctionGradient  = implicit.OpFunctionGradient
	OpNormalizeDistance = implicit.OpNormalizeDistance
)

// Opcodes returns every opcode with a catalog entry, in declaration
// order.
func Opcodes() []Opcode {
	return implicit.Opcodes()
}

// NewFunction creates an empty implicit function with the given
// resource-id, ready to have inputs, outputs, nodes, and links added to
// it.
func NewFunction(resourceID uint32, displayName string) *ImplicitFunction {
	return implicit.NewFunction(resourceID, displayName)
}

// Signature is the catalog's per-opcode entry describing a node's legal
// ports and payload fields.
type Signature = implicit.Signature

// PortTemplate describes one expected port in a Signature; callers also
// pass these to AddFunctionCallNode to declare the call's dynamic ports.
type PortTemplate = implicit.PortTemplate

// LookupSignature returns the catalog entry for an opcode.
func LookupSignature(op Opcode) (Signature, bool) {
	return implicit.LookupSignature(op)
}

// Validator checks port conformance, link conformance, and reference
// resolution for a function.
type Validator = implicit.Validator

// Diagnostic is one violation reported by Validator.Validate.
type Diagnostic = implicit.Diagnostic

// ResourceResolver resolves resource-id references for the validator's
// third check. *Store implements this.
type ResourceResolver = implicit.ResourceResolver
