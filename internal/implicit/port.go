package implicit

// Side identifies which list a Port belongs to: a function's own
// input/output list, or a node's input/output list.
type Side int

const (
	SideFunctionInput Side = iota
	SideFunctionOutput
	SideNodeInput
	SideNodeOutput
)

// Port is a typed endpoint belonging to exactly one node (or, for
// function-level inputs/outputs, to the function itself). Source is the
// single upstream producer this port consumes from; it is nil for
// function-level inputs (they are graph sources) and for node outputs
// (they are producers, not consumers).
type Port struct {
	ID          string
	DisplayName string
	Type        PortType
	Side        Side

	// Default is the literal fallback value for an unlinked input. Only
	// meaningful when Side is SideNodeInput or SideFunctionOutput.
	Default *float64

	// Source is the upstream producer port. Set only via AddLink.
	Source *Port

	node     *Node             // nil for function-level ports
	function *ImplicitFunction // always set
}

// IsProducer reports whether this port can serve as a link source: node
// outputs and function-level inputs.
func (p *Port) IsProducer() bool {
	return p.Side == SideNodeOutput || p.Side == SideFunctionInput
}

// IsConsumer reports whether this port can serve as a link target: node
// inputs and function-level outputs.
func (p *Port) IsConsumer() bool {
	return p.Side == SideNodeInput || p.Side == SideFunctionOutput
}

// Node returns the owning node, or nil for function-level ports.
func (p *Port) Node() *Node {
	return p.node
}

// Function returns the owning function.
func (p *Port) Function() *ImplicitFunction {
	return p.function
}

// Linked reports whether a consumer port currently has a source.
func (p *Port) Linked() bool {
	return p.Source != nil
}

// qualifiedRef renders the "nodeIdentifier.portIdentifier" or bare
// identifier form used by the codec to serialize a producer reference.
func (p *Port) qualifiedRef() string {
	if p.node != nil {
		return p.node.Identifier + "." + p.ID
	}
	return p.ID
}
