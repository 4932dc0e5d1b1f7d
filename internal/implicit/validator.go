package implicit

import "fmt"

// Severity distinguishes a fatal diagnostic from one the caller may treat
// as a warning (used for Validator.Lenient signature downgrades).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one violation reported by the Validator. Kind narrows
// which of the three checks (port conformance, link conformance,
// reference resolution) produced it.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	NodeID   string
	PortID   string
	Message  string
}

func (d Diagnostic) String() string {
	if d.PortID != "" {
		return fmt.Sprintf("%s: node=%q port=%q: %s", d.Kind, d.NodeID, d.PortID, d.Message)
	}
	return fmt.Sprintf("%s: node=%q: %s", d.Kind, d.NodeID, d.Message)
}

// ResourceResolver resolves resource-id references for the third
// validator check. Implemented by package resource's Store; declared here
// so internal/implicit does not import internal/resource.
type ResourceResolver interface {
	// ResolveFunction returns the function resource with the given id,
	// if one exists.
	ResolveFunction(id uint32) (*ImplicitFunction, bool)
	// Exists reports whether any resource (of any kind) is registered
	// under id.
	Exists(id uint32) bool
}

// Validator runs three checks over a function: port conformance, link
// conformance, and reference resolution. It is idempotent and has no
// side effects; every call returns a fresh diagnostic list.
type Validator struct {
	// Lenient downgrades FunctionCall/FunctionGradient/NormalizeDistance
	// signature mismatches from InvalidSignature errors to warnings,
	// for compatibility with pre-existing files that only enforced the
	// signature lazily at evaluation time.
	Lenient bool
}

// Validate runs all three checks against f, resolving resource-id
// references through resolver. resolver may be nil, in which case every
// resource-id reference is reported DanglingReference.
func (v *Validator) Validate(f *ImplicitFunction, resolver ResourceResolver) []Diagnostic {
	var diags []Diagnostic
	diags = append(diags, v.checkPortConformance(f)...)
	diags = append(diags, v.checkLinkConformance(f)...)
	diags = append(diags, v.checkReferenceResolution(f, resolver)...)
	return diags
}

func (v *Validator) checkPortConformance(f *ImplicitFunction) []Diagnostic {
	var diags []Diagnostic
	for _, n := range f.Nodes {
		sig, ok := LookupSignature(n.Opcode)
		if !ok {
			diags = append(diags, Diagnostic{Kind: KindDomainMismatch, NodeID: n.Identifier, Message: "unknown opcode"})
			continue
		}
		if sig.Dynamic {
			if n.Input("functionid") == nil {
				diags = append(diags, Diagnostic{Kind: KindMissingPort(), NodeID: n.Identifier, PortID: "functionid", Message: "FunctionCall requires a functionid input"})
			}
			continue
		}
		diags = append(diags, diffPortList(n.Identifier, "input", sig.Inputs, n.Inputs, n.Configuration)...)
		diags = append(diags, diffPortList(n.Identifier, "output", sig.Outputs, n.Outputs, n.Configuration)...)
	}
	return diags
}

// kindMissingPort, kindExtraPort, and kindPortTypeMismatch are the three
// port-conformance diagnostic kinds. They sit in the same Kind space as
// the top-level taxonomy in errors.go rather than introducing a parallel
// type.
const (
	kindMissingPort Kind = 100 + iota
	kindExtraPort
	kindPortTypeMismatch
)

func init() {
	sentinelByKind[kindMissingPort] = ErrDomainMismatch
	sentinelByKind[kindExtraPort] = ErrDomainMismatch
	sentinelByKind[kindPortTypeMismatch] = ErrTypeMismatch
}

// KindMissingPort reports a node missing a catalog-mandated port.
func KindMissingPort() Kind { return kindMissingPort }

// KindExtraPort reports a node carrying a port the catalog forbids.
func KindExtraPort() Kind { return kindExtraPort }

// KindPortTypeMismatch reports a port present with the wrong type.
func KindPortTypeMismatch() Kind { return kindPortTypeMismatch }

func diffPortList(nodeID, side string, templates []PortTemplate, actual []*Port, cfg PortType) []Diagnostic {
	var diags []Diagnostic
	byID := make(map[string]*Port, len(actual))
	for _, p := range actual {
		byID[p.ID] = p
	}
	seen := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		seen[tpl.ID] = true
		want := tpl.Type
		if want == TypeUnset {
			want = cfg
		}
		p, ok := byID[tpl.ID]
		if !ok {
			diags = append(diags, Diagnostic{Kind: kindMissingPort, NodeID: nodeID, PortID: tpl.ID, Message: side + " port missing"})
			continue
		}
		if p.Type != want {
			diags = append(diags, Diagnostic{Kind: kindPortTypeMismatch, NodeID: nodeID, PortID: tpl.ID, Message: fmt.Sprintf("expected type %s, got %s", want, p.Type)})
		}
	}
	for _, p := range actual {
		if !seen[p.ID] {
			diags = append(diags, Diagnostic{Kind: kindExtraPort, NodeID: nodeID, PortID: p.ID, Message: side + " port not in catalog"})
		}
	}
	return diags
}

func (v *Validator) checkLinkConformance(f *ImplicitFunction) []Diagnostic {
	var diags []Diagnostic
	check := func(nodeID string, consumers []*Port, templates []PortTemplate) {
		reqByID := make(map[string]bool, len(templates))
		for _, tpl := range templates {
			reqByID[tpl.ID] = tpl.Required
		}
		for _, in := range consumers {
			if in.Source != nil {
				if in.Source.Type != in.Type {
					diags = append(diags, Diagnostic{Kind: KindTypeMismatch, NodeID: nodeID, PortID: in.ID, Message: "producer output type no longer matches consumer input type"})
				}
				continue
			}
			if in.Default != nil {
				continue
			}
			if reqByID[in.ID] {
				diags = append(diags, Diagnostic{Kind: KindTypeMismatch, NodeID: nodeID, PortID: in.ID, Message: "required input is neither linked nor defaulted"})
			}
		}
	}
	for _, n := range f.Nodes {
		sig, ok := LookupSignature(n.Opcode)
		if !ok {
			continue
		}
		check(n.Identifier, n.Inputs, sig.Inputs)
	}
	for _, out := range f.Outputs {
		if out.Source == nil {
			continue
		}
		if out.Source.Type != out.Type {
			diags = append(diags, Diagnostic{Kind: KindTypeMismatch, NodeID: "", PortID: out.ID, Message: "function output producer type mismatch"})
		}
	}
	return diags
}

func (v *Validator) checkReferenceResolution(f *ImplicitFunction, resolver ResourceResolver) []Diagnostic {
	var diags []Diagnostic
	for _, n := range f.Nodes {
		sig, ok := LookupSignature(n.Opcode)
		if !ok {
			continue
		}

		if sig.HasExtra(ExtraResourceID) && n.payload.resourceIDSet {
			if !resourceExists(resolver, n.payload.resourceID) {
				diags = append(diags, Diagnostic{Kind: KindDanglingReference, NodeID: n.Identifier, Message: fmt.Sprintf("resource id %d not found", n.payload.resourceID)})
			}
		}

		if !sig.HasExtra(ExtraFunctionID) || !n.payload.functionIDSet {
			continue
		}
		fn, ok := resolveFunction(resolver, n.payload.functionID)
		if !ok {
			diags = append(diags, Diagnostic{Kind: KindDanglingReference, NodeID: n.Identifier, Message: fmt.Sprintf("function id %d not found", n.payload.functionID)})
			continue
		}
		diags = append(diags, v.checkReferencedSignature(n, fn)...)
	}
	return diags
}

func resourceExists(resolver ResourceResolver, id uint32) bool {
	if resolver == nil {
		return false
	}
	return resolver.Exists(id)
}

func resolveFunction(resolver ResourceResolver, id uint32) (*ImplicitFunction, bool) {
	if resolver == nil {
		return nil, false
	}
	return resolver.ResolveFunction(id)
}

func (v *Validator) checkReferencedSignature(n *Node, fn *ImplicitFunction) []Diagnostic {
	var diags []Diagnostic
	fail := func(portID, msg string) {
		sev := SeverityError
		if v.Lenient {
			sev = SeverityWarning
		}
		diags = append(diags, Diagnostic{Kind: KindInvalidSignature, Severity: sev, NodeID: n.Identifier, PortID: portID, Message: msg})
	}

	switch n.Opcode {
	case OpFunctionCall:
		for _, in := range n.Inputs {
			if in.ID == "functionid" {
				continue
			}
			want := fn.findInputType(in.ID)
			if want == nil {
				fail(in.ID, "referenced function has no matching input")
				continue
			}
			if *want != in.Type {
				fail(in.ID, "referenced function input type mismatch")
			}
		}
		for _, out := range n.Outputs {
			want := fn.findOutputType(out.ID)
			if want == nil {
				fail(out.ID, "referenced function has no matching output")
				continue
			}
			if *want != out.Type {
				fail(out.ID, "referenced function output type mismatch")
			}
		}
	case OpFunctionGradient, OpNormalizeDistance:
		scalarName, _ := n.GetScalarOutputName()
		vectorName, _ := n.GetVectorInputName()
		if t := fn.findOutputType(scalarName); t == nil || *t != Scalar {
			fail(scalarName, "referenced function has no scalar output with this name")
		}
		if t := fn.findInputType(vectorName); t == nil || *t != Vector {
			fail(vectorName, "referenced function has no vector input with this name")
		}
	}
	return diags
}

func (f *ImplicitFunction) findInputType(id string) *PortType {
	for _, p := range f.Inputs {
		if p.ID == id {
			t := p.Type
			return &t
		}
	}
	return nil
}

func (f *ImplicitFunction) findOutputType(id string) *PortType {
	for _, p := range f.Outputs {
		if p.ID == id {
			t := p.Type
			return &t
		}
	}
	return nil
}
