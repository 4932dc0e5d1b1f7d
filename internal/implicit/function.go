package implicit

// ImplicitFunction is a named resource: an ordered DAG of Nodes connected
// by typed Links, plus ordered function-level input and output ports.
type ImplicitFunction struct {
	ResourceID  uint32
	DisplayName string

	Inputs  []*Port
	Outputs []*Port
	Nodes   []*Node

	nextGraphID uint64
}

// NewFunction creates an empty function with the given resource-id.
func NewFunction(resourceID uint32, displayName string) *ImplicitFunction {
	return &ImplicitFunction{ResourceID: resourceID, DisplayName: displayName}
}

func (f *ImplicitFunction) hasInputID(id string) bool {
	for _, p := range f.Inputs {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (f *ImplicitFunction) hasOutputID(id string) bool {
	for _, p := range f.Outputs {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (f *ImplicitFunction) hasNodeID(id string) bool {
	return f.NodeByIdentifier(id) != nil
}

// NodeByIdentifier returns the node with the given identifier, or nil.
func (f *ImplicitFunction) NodeByIdentifier(id string) *Node {
	for _, n := range f.Nodes {
		if n.Identifier == id {
			return n
		}
	}
	return nil
}

// AddInput appends a function-level input port.
func (f *ImplicitFunction) AddInput(id, displayName string, t PortType) (*Port, error) {
	if f.hasInputID(id) {
		return nil, &Error{Kind: KindDuplicateIdentifier, Op: "AddInput", Identifier: id}
	}
	p := &Port{ID: id, DisplayName: displayName, Type: t, Side: SideFunctionInput, function: f}
	f.Inputs = append(f.Inputs, p)
	return p, nil
}

// AddOutput appends a function-level output port.
func (f *ImplicitFunction) AddOutput(id, displayName string, t PortType) (*Port, error) {
	if f.hasOutputID(id) {
		return nil, &Error{Kind: KindDuplicateIdentifier, Op: "AddOutput", Identifier: id}
	}
	p := &Port{ID: id, DisplayName: displayName, Type: t, Side: SideFunctionOutput, function: f}
	f.Outputs = append(f.Outputs, p)
	return p, nil
}

// OutputsByType returns the function's outputs whose type matches t, in
// declaration order. Used by the volumetric color/property/level-set
// consumers in package resource to find a candidate output by type.
func (f *ImplicitFunction) OutputsByType(t PortType) []*Port {
	var out []*Port
	for _, p := range f.Outputs {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// AddNode constructs a node of a non-configurable opcode, materializing
// every catalog-mandated port eagerly.
func (f *ImplicitFunction) AddNode(op Opcode, id, displayName, tag string) (*Node, error) {
	return f.addNodeConfigured(op, TypeUnset, id, displayName, tag)
}

// AddConfiguredNode constructs a node of a configurable opcode (arithmetic,
// unary, select, clamp), materializing ports at the given configuration
// (Scalar, Vector, or Matrix).
func (f *ImplicitFunction) AddConfiguredNode(op Opcode, cfg PortType, id, displayName, tag string) (*Node, error) {
	sig, ok := LookupSignature(op)
	if !ok {
		return nil, &Error{Kind: KindDomainMismatch, Op: "AddConfiguredNode", Identifier: id, Details: "unknown opcode"}
	}
	if len(sig.Configs) > 0 && !sig.AllowsConfig(cfg) {
		return nil, &Error{Kind: KindTypeMismatch, Op: "AddConfiguredNode", NodeID: id, Details: "configuration not allowed for opcode"}
	}
	return f.addNodeConfigured(op, cfg, id, displayName, tag)
}

func (f *ImplicitFunction) addNodeConfigured(op Opcode, cfg PortType, id, displayName, tag string) (*Node, error) {
	if f.hasNodeID(id) {
		return nil, &Error{Kind: KindDuplicateIdentifier, Op: "AddNode", Identifier: id}
	}
	sig, ok := LookupSignature(op)
	if !ok {
		return nil, &Error{Kind: KindDomainMismatch, Op: "AddNode", Identifier: id, Details: "unknown opcode"}
	}

	n := &Node{
		GraphID:       f.nextGraphID,
		Opcode:        op,
		Configuration: cfg,
		Identifier:    id,
		DisplayName:   displayName,
		Tag:           tag,
		function:      f,
	}
	f.nextGraphID++

	for _, tpl := range sig.Inputs {
		n.Inputs = append(n.Inputs, materializePort(tpl, cfg, SideNodeInput, n, f))
	}
	for _, tpl := range sig.Outputs {
		n.Outputs = append(n.Outputs, materializePort(tpl, cfg, SideNodeOutput, n, f))
	}

	f.Nodes = append(f.Nodes, n)
	return n, nil
}

func materializePort(tpl PortTemplate, cfg PortType, side Side, n *Node, f *ImplicitFunction) *Port {
	t := tpl.Type
	if t == TypeUnset {
		t = cfg
	}
	p := &Port{ID: tpl.ID, DisplayName: tpl.DisplayName, Type: t, Side: side, node: n, function: f}
	return p
}

// AddFunctionCallNode constructs a FunctionCall node. Its full input/
// output port shape (beyond the fixed "functionid" input) depends on the
// referenced function and is supplied by the caller (typically the codec,
// reading the node's own child port declarations) or, for programmatic
// construction, by the caller consulting the referenced function's
// Inputs/Outputs directly.
func (f *ImplicitFunction) AddFunctionCallNode(id, displayName, tag string, functionID uint32, inputs, outputs []PortTemplate) (*Node, error) {
	if f.hasNodeID(id) {
		return nil, &Error{Kind: KindDuplicateIdentifier, Op: "AddFunctionCallNode", Identifier: id}
	}
	n := &Node{
		GraphID:     f.nextGraphID,
		Opcode:      OpFunctionCall,
		Identifier:  id,
		DisplayName: displayName,
		Tag:         tag,
		function:    f,
	}
	f.nextGraphID++

	n.Inputs = append(n.Inputs, &Port{ID: "functionid", DisplayName: "functionid", Type: ResourceID, Side: SideNodeInput, node: n, function: f})
	for _, tpl := range inputs {
		n.Inputs = append(n.Inputs, &Port{ID: tpl.ID, DisplayName: tpl.DisplayName, Type: tpl.Type, Side: SideNodeInput, node: n, function: f})
	}
	for _, tpl := range outputs {
		n.Outputs = append(n.Outputs, &Port{ID: tpl.ID, DisplayName: tpl.DisplayName, Type: tpl.Type, Side: SideNodeOutput, node: n, function: f})
	}

	if err := n.SetFunctionID(functionID); err != nil {
		return nil, err
	}
	f.Nodes = append(f.Nodes, n)
	return n, nil
}

// AddBeamLatticeNode is a convenience constructor binding OpBeamLattice.
func (f *ImplicitFunction) AddBeamLatticeNode(id, displayName, tag string) (*Node, error) {
	return f.AddNode(OpBeamLattice, id, displayName, tag)
}

// AddFunctionGradientNode is a convenience constructor binding
// OpFunctionGradient.
func (f *ImplicitFunction) AddFunctionGradientNode(id, displayName, tag string) (*Node, error) {
	return f.AddNode(OpFunctionGradient, id, displayName, tag)
}

// AddNormalizeDistanceNode is a convenience constructor binding
// OpNormalizeDistance.
func (f *ImplicitFunction) AddNormalizeDistanceNode(id, displayName, tag string) (*Node, error) {
	return f.AddNode(OpNormalizeDistance, id, displayName, tag)
}

// AddConstantNode is a convenience constructor binding OpConstant.
func (f *ImplicitFunction) AddConstantNode(id, displayName, tag string, value float64) (*Node, error) {
	n, err := f.AddNode(OpConstant, id, displayName, tag)
	if err != nil {
		return nil, err
	}
	if err := n.SetConstant(value); err != nil {
		return nil, err
	}
	return n, nil
}

// AddResourceIDNode is a convenience constructor binding
// OpConstResourceID.
func (f *ImplicitFunction) AddResourceIDNode(id, displayName, tag string, resourceID uint32) (*Node, error) {
	n, err := f.AddNode(OpConstResourceID, id, displayName, tag)
	if err != nil {
		return nil, err
	}
	if err := n.SetModelResourceID(resourceID); err != nil {
		return nil, err
	}
	return n, nil
}

// AddAdditionNode is a convenience constructor binding OpAddition at the
// given configuration.
func (f *ImplicitFunction) AddAdditionNode(cfg PortType, id, displayName, tag string) (*Node, error) {
	return f.AddConfiguredNode(OpAddition, cfg, id, displayName, tag)
}

// AddLink records a typed edge from a producer output port to a consumer
// input port.
func (f *ImplicitFunction) AddLink(producer, consumer *Port) error {
	if producer.function != f || consumer.function != f {
		return &Error{Kind: KindCrossFunction, Op: "AddLink"}
	}
	if !producer.IsProducer() || !consumer.IsConsumer() {
		return &Error{Kind: KindTypeMismatch, Op: "AddLink", PortID: consumer.ID, Details: "link must go from an output to an input"}
	}
	if producer.Type != consumer.Type {
		return &Error{Kind: KindTypeMismatch, Op: "AddLink", PortID: consumer.ID, Details: "producer/consumer type differ"}
	}
	if consumer.Source != nil {
		return &Error{Kind: KindAlreadyLinked, Op: "AddLink", PortID: consumer.ID}
	}
	consumer.Source = producer
	return nil
}
