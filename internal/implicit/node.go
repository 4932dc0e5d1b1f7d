package implicit

// payload holds every opcode-specific field a node might carry. Storage
// is uniform across opcodes; access is gated by the catalog's Extras list
// (see catalog.go) so that, e.g., reading a Constant on a Dot node fails
// DomainMismatch.
type payload struct {
	constant      float64
	constantSet   bool
	vector        [3]float64
	vectorSet     bool
	matrix        [16]float64
	matrixSet     bool
	resourceID    uint32
	resourceIDSet bool
	accurateRange float64

	functionID       uint32
	functionIDSet    bool
	scalarOutputName string
	vectorInputName  string
}

// Node is one vertex in an implicit function's graph.
type Node struct {
	GraphID       uint64
	Opcode        Opcode
	Configuration PortType // TypeUnset if the opcode is not configurable
	Identifier    string
	DisplayName   string
	Tag           string

	Inputs  []*Port
	Outputs []*Port

	function *ImplicitFunction
	payload  payload
}

// Function returns the owning function.
func (n *Node) Function() *ImplicitFunction {
	return n.function
}

// Input returns the input port with the given identifier, or nil.
func (n *Node) Input(id string) *Port {
	for _, p := range n.Inputs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Output returns the output port with the given identifier, or nil.
func (n *Node) Output(id string) *Port {
	for _, p := range n.Outputs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// signature returns the node's catalog entry.
func (n *Node) signature() Signature {
	sig, _ := LookupSignature(n.Opcode)
	return sig
}

// PortsValid reports whether the node's current ports match its catalog
// template: every expected port present with matching type, and no
// forbidden extra ports. FunctionCall is handled by the validator against
// the resource store, since its signature is dynamic.
func (n *Node) PortsValid() bool {
	sig := n.signature()
	if sig.Dynamic {
		return n.Input("functionid") != nil
	}

	if !portListMatches(sig.Inputs, n.Inputs, n.Configuration) {
		return false
	}
	if !portListMatches(sig.Outputs, n.Outputs, n.Configuration) {
		return false
	}
	return true
}

func portListMatches(templates []PortTemplate, actual []*Port, cfg PortType) bool {
	if len(templates) != len(actual) {
		return false
	}
	for i, tpl := range templates {
		want := tpl.Type
		if want == TypeUnset {
			want = cfg
		}
		if actual[i].ID != tpl.ID || actual[i].Type != want {
			return false
		}
	}
	return true
}

// SetConstant sets the scalar literal of a Constant node.
func (n *Node) SetConstant(v float64) error {
	if !n.signature().HasExtra(ExtraConstant) {
		return &Error{Kind: KindDomainMismatch, Op: "SetConstant", NodeID: n.Identifier}
	}
	n.payload.constant = v
	n.payload.constantSet = true
	return nil
}

// GetConstant returns the scalar literal of a Constant node.
func (n *Node) GetConstant() (float64, error) {
	if !n.signature().HasExtra(ExtraConstant) {
		return 0, &Error{Kind: KindDomainMismatch, Op: "GetConstant", NodeID: n.Identifier}
	}
	if !n.payload.constantSet {
		return 0, &Error{Kind: KindUninitialized, Op: "GetConstant", NodeID: n.Identifier}
	}
	return n.payload.constant, nil
}

// SetVector sets the x,y,z literal of a ConstVec node.
func (n *Node) SetVector(x, y, z float64) error {
	if !n.signature().HasExtra(ExtraVector) {
		return &Error{Kind: KindDomainMismatch, Op: "SetVector", NodeID: n.Identifier}
	}
	n.payload.vector = [3]float64{x, y, z}
	n.payload.vectorSet = true
	return nil
}

// GetVector returns the x,y,z literal of a ConstVec node.
func (n *Node) GetVector() ([3]float64, error) {
	if !n.signature().HasExtra(ExtraVector) {
		return [3]float64{}, &Error{Kind: KindDomainMismatch, Op: "GetVector", NodeID: n.Identifier}
	}
	if !n.payload.vectorSet {
		return [3]float64{}, &Error{Kind: KindUninitialized, Op: "GetVector", NodeID: n.Identifier}
	}
	return n.payload.vector, nil
}

// SetMatrix sets the 16-component literal of a ConstMat node.
func (n *Node) SetMatrix(m [16]float64) error {
	if !n.signature().HasExtra(ExtraMatrix) {
		return &Error{Kind: KindDomainMismatch, Op: "SetMatrix", NodeID: n.Identifier}
	}
	n.payload.matrix = m
	n.payload.matrixSet = true
	return nil
}

// GetMatrix returns the 16-component literal of a ConstMat node.
func (n *Node) GetMatrix() ([16]float64, error) {
	if !n.signature().HasExtra(ExtraMatrix) {
		return [16]float64{}, &Error{Kind: KindDomainMismatch, Op: "GetMatrix", NodeID: n.Identifier}
	}
	if !n.payload.matrixSet {
		return [16]float64{}, &Error{Kind: KindUninitialized, Op: "GetMatrix", NodeID: n.Identifier}
	}
	return n.payload.matrix, nil
}

// SetModelResourceID sets the resource-id literal of a ConstResourceID
// node.
func (n *Node) SetModelResourceID(id uint32) error {
	if !n.signature().HasExtra(ExtraResourceID) {
		return &Error{Kind: KindDomainMismatch, Op: "SetModelResourceID", NodeID: n.Identifier}
	}
	n.payload.resourceID = id
	n.payload.resourceIDSet = true
	return nil
}

// GetModelResourceID returns the resource-id literal of a ConstResourceID
// node.
func (n *Node) GetModelResourceID() (uint32, error) {
	if !n.signature().HasExtra(ExtraResourceID) {
		return 0, &Error{Kind: KindDomainMismatch, Op: "GetModelResourceID", NodeID: n.Identifier}
	}
	if !n.payload.resourceIDSet {
		return 0, &Error{Kind: KindUninitialized, Op: "GetModelResourceID", NodeID: n.Identifier}
	}
	return n.payload.resourceID, nil
}

// SetAccurateRange sets BeamLattice's accurate-range attribute, clamping
// negative values to 0 unless strict is true, in which case a negative
// value is reported as a SchemaViolation instead.
func (n *Node) SetAccurateRange(v float64, strict bool) error {
	if !n.signature().HasExtra(ExtraAccurateRange) {
		return &Error{Kind: KindDomainMismatch, Op: "SetAccurateRange", NodeID: n.Identifier}
	}
	if v < 0 {
		if strict {
			return &Error{Kind: KindSchemaViolation, Op: "SetAccurateRange", NodeID: n.Identifier, Details: "accuraterange must be >= 0"}
		}
		v = 0
	}
	n.payload.accurateRange = v
	return nil
}

// GetAccurateRange returns BeamLattice's accurate-range attribute,
// defaulting to 0.0 when never set.
func (n *Node) GetAccurateRange() (float64, error) {
	if !n.signature().HasExtra(ExtraAccurateRange) {
		return 0, &Error{Kind: KindDomainMismatch, Op: "GetAccurateRange", NodeID: n.Identifier}
	}
	return n.payload.accurateRange, nil
}

// SetFunctionID sets the referenced-function resource-id for
// FunctionCall, FunctionGradient, and NormalizeDistance nodes.
func (n *Node) SetFunctionID(id uint32) error {
	if !n.signature().HasExtra(ExtraFunctionID) {
		return &Error{Kind: KindDomainMismatch, Op: "SetFunctionID", NodeID: n.Identifier}
	}
	n.payload.functionID = id
	n.payload.functionIDSet = true
	return nil
}

// GetFunctionID returns the referenced-function resource-id.
func (n *Node) GetFunctionID() (uint32, error) {
	if !n.signature().HasExtra(ExtraFunctionID) {
		return 0, &Error{Kind: KindDomainMismatch, Op: "GetFunctionID", NodeID: n.Identifier}
	}
	if !n.payload.functionIDSet {
		return 0, &Error{Kind: KindUninitialized, Op: "GetFunctionID", NodeID: n.Identifier}
	}
	return n.payload.functionID, nil
}

// SetScalarOutputName sets the FunctionGradient/NormalizeDistance
// scalarOutputName attribute.
func (n *Node) SetScalarOutputName(name string) error {
	if !n.signature().HasExtra(ExtraScalarOutputName) {
		return &Error{Kind: KindDomainMismatch, Op: "SetScalarOutputName", NodeID: n.Identifier}
	}
	n.payload.scalarOutputName = name
	return nil
}

// GetScalarOutputName returns the scalarOutputName attribute, defaulting
// per opcode when never explicitly set.
func (n *Node) GetScalarOutputName() (string, error) {
	if !n.signature().HasExtra(ExtraScalarOutputName) {
		return "", &Error{Kind: KindDomainMismatch, Op: "GetScalarOutputName", NodeID: n.Identifier}
	}
	if n.payload.scalarOutputName != "" {
		return n.payload.scalarOutputName, nil
	}
	return n.defaultScalarOutputName(), nil
}

// SetVectorInputName sets the FunctionGradient/NormalizeDistance
// vectorInputName attribute.
func (n *Node) SetVectorInputName(name string) error {
	if !n.signature().HasExtra(ExtraVectorInputName) {
		return &Error{Kind: KindDomainMismatch, Op: "SetVectorInputName", NodeID: n.Identifier}
	}
	n.payload.vectorInputName = name
	return nil
}

// GetVectorInputName returns the vectorInputName attribute, defaulting
// per opcode when never explicitly set.
func (n *Node) GetVectorInputName() (string, error) {
	if !n.signature().HasExtra(ExtraVectorInputName) {
		return "", &Error{Kind: KindDomainMismatch, Op: "GetVectorInputName", NodeID: n.Identifier}
	}
	if n.payload.vectorInputName != "" {
		return n.payload.vectorInputName, nil
	}
	return n.defaultVectorInputName(), nil
}

func (n *Node) defaultScalarOutputName() string {
	switch n.Opcode {
	case OpFunctionGradient:
		s, _ := FunctionGradientDefaults()
		return s
	case OpNormalizeDistance:
		s, _ := NormalizeDistanceDefaults()
		return s
	default:
		return ""
	}
}

func (n *Node) defaultVectorInputName() string {
	switch n.Opcode {
	case OpFunctionGradient:
		_, v := FunctionGradientDefaults()
		return v
	case OpNormalizeDistance:
		_, v := NormalizeDistanceDefaults()
		return v
	default:
		return ""
	}
}
