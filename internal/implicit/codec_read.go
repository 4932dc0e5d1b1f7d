package implicit

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// ReadFunction parses an <implicitfunction> element. dec must have just
// produced start (the caller's own token loop dispatches on element
// name); ReadFunction consumes every token up to and including the
// matching EndElement.
//
// Node-output and function-input references are collected as raw ref
// strings during a first pass over the element stream, then resolved
// against the function's identifier tables in a second pass, so a <in
// ref="..."/> may name a node that has not been read yet.
func ReadFunction(dec *xml.Decoder, start xml.StartElement, opts ReadOptions) (*ImplicitFunction, []Warning, error) {
	id, ok := findAttr(start.Attr, "id")
	if !ok {
		return nil, nil, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Details: "missing id attribute"}
	}
	resourceID, err := parseUint32(id)
	if err != nil {
		return nil, nil, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Details: "invalid id attribute"}
	}
	displayName, _ := findAttr(start.Attr, "displayname")

	f := NewFunction(resourceID, displayName)
	var warnings []Warning
	var pending []pendingRef

	for {
		if err := checkCancelled(opts.Ctx); err != nil {
			return nil, warnings, err
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, warnings, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Details: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "in":
				p, werr := readFunctionInput(f, t)
				if werr != nil {
					return nil, warnings, werr
				}
				if err := dec.Skip(); err != nil {
					return nil, warnings, err
				}
				_ = p
			case "out":
				p, ref, werr := readFunctionOutput(f, t)
				if werr != nil {
					return nil, warnings, werr
				}
				if err := dec.Skip(); err != nil {
					return nil, warnings, err
				}
				if ref != "" {
					pending = append(pending, pendingRef{consumer: p, ref: ref})
				}
			default:
				op, ok := OpcodeByElement(t.Name.Local)
				if !ok {
					warnings = append(warnings, Warning{Kind: KindUnknownElement, Element: t.Name.Local, Message: "unrecognized node element"})
					if err := dec.Skip(); err != nil {
						return nil, warnings, err
					}
					continue
				}
				nodeRefs, werr := readNode(dec, t, op, f, opts, &warnings)
				if werr != nil {
					return nil, warnings, werr
				}
				pending = append(pending, nodeRefs...)
			}
		case xml.EndElement:
			if t.Name == start.Name {
				if err := resolvePending(f, pending, opts, &warnings); err != nil {
					return nil, warnings, err
				}
				return f, warnings, nil
			}
		}
	}
}

// pendingRef is a consumer port whose producer reference could not be
// resolved while its element was being read.
type pendingRef struct {
	consumer *Port
	ref      string
}

func readFunctionInput(f *ImplicitFunction, se xml.StartElement) (*Port, error) {
	id, ok := findAttr(se.Attr, "identifier")
	if !ok {
		return nil, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Details: "<in> missing identifier"}
	}
	displayName, _ := findAttr(se.Attr, "displayname")
	t, err := requireAttrType(se.Attr, id)
	if err != nil {
		return nil, err
	}
	return f.AddInput(id, displayName, t)
}

func readFunctionOutput(f *ImplicitFunction, se xml.StartElement) (*Port, string, error) {
	id, ok := findAttr(se.Attr, "identifier")
	if !ok {
		return nil, "", &Error{Kind: KindMalformedXML, Op: "ReadFunction", Details: "<out> missing identifier"}
	}
	displayName, _ := findAttr(se.Attr, "displayname")
	t, err := requireAttrType(se.Attr, id)
	if err != nil {
		return nil, "", err
	}
	p, err := f.AddOutput(id, displayName, t)
	if err != nil {
		return nil, "", err
	}
	ref, _ := findAttr(se.Attr, "ref")
	return p, ref, nil
}

func requireAttrType(attrs []xml.Attr, identifier string) (PortType, error) {
	typeStr, ok := findAttr(attrs, "type")
	if !ok {
		return TypeUnset, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Identifier: identifier, Details: "missing type attribute"}
	}
	t, ok := ParsePortType(typeStr)
	if !ok {
		return TypeUnset, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Identifier: identifier, Details: "unknown type " + typeStr}
	}
	return t, nil
}

// childPort is a nested <in>/<out> element read from a node, before its
// identifier has been matched against the node's materialized ports.
type childPort struct {
	identifier string
	hasID      bool
	typ        string
	ref        string
	hasRef     bool
	def        string
	hasDef     bool
}

func readNode(dec *xml.Decoder, se xml.StartElement, op Opcode, f *ImplicitFunction, opts ReadOptions, warnings *[]Warning) ([]pendingRef, error) {
	identifier, ok := findAttr(se.Attr, "identifier")
	if !ok {
		return nil, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Details: se.Name.Local + " missing identifier"}
	}
	displayName, _ := findAttr(se.Attr, "displayname")
	tag, _ := findAttr(se.Attr, "tag")

	if sig, ok := LookupSignature(op); ok {
		known := knownNodeAttrs(sig)
		for _, a := range se.Attr {
			if !known[a.Name.Local] {
				*warnings = append(*warnings, Warning{Kind: KindUnknownAttribute, Element: se.Name.Local, Attr: a.Name.Local, Message: "unrecognized attribute"})
			}
		}
	}

	var inChildren, outChildren []childPort
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Identifier: identifier, Details: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "in":
				inChildren = append(inChildren, readChildPort(t))
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			case "out":
				outChildren = append(outChildren, readChildPort(t))
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			default:
				*warnings = append(*warnings, Warning{Kind: KindUnknownElement, Element: t.Name.Local, Message: "unrecognized child of " + se.Name.Local})
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name == se.Name {
				n, err := buildNode(f, op, identifier, displayName, tag, outChildren)
				if err != nil {
					return nil, err
				}
				if sig, ok := LookupSignature(op); ok && sig.Dynamic {
					if err := attachDynamicPorts(n, inChildren, outChildren); err != nil {
						return nil, err
					}
				}
				if err := bindLiteralExtras(n, se.Attr, opts); err != nil {
					return nil, err
				}
				return bindNodeInputs(n, inChildren)
			}
		}
	}
}

// knownNodeAttrs lists every attribute a node element of the given
// signature may legitimately carry, so the reader can warn on the rest.
func knownNodeAttrs(sig Signature) map[string]bool {
	known := map[string]bool{"identifier": true, "displayname": true, "tag": true}
	for _, e := range sig.Extras {
		switch e {
		case ExtraConstant, ExtraResourceID:
			known["value"] = true
		case ExtraVector:
			known["x"], known["y"], known["z"] = true, true, true
		case ExtraMatrix:
			for _, name := range matrixComponentNames {
				known[name] = true
			}
		case ExtraAccurateRange:
			known["accuraterange"] = true
		case ExtraScalarOutputName:
			known["scalarOutputName"] = true
		case ExtraVectorInputName:
			known["vectorInputName"] = true
		}
	}
	return known
}

func readChildPort(se xml.StartElement) childPort {
	cp := childPort{}
	if v, ok := findAttr(se.Attr, "identifier"); ok {
		cp.identifier, cp.hasID = v, true
	}
	if v, ok := findAttr(se.Attr, "type"); ok {
		cp.typ = v
	}
	if v, ok := findAttr(se.Attr, "ref"); ok {
		cp.ref, cp.hasRef = v, true
	}
	if v, ok := findAttr(se.Attr, "default"); ok {
		cp.def, cp.hasDef = v, true
	}
	return cp
}

func buildNode(f *ImplicitFunction, op Opcode, identifier, displayName, tag string, outChildren []childPort) (*Node, error) {
	sig, ok := LookupSignature(op)
	if !ok {
		return nil, &Error{Kind: KindDomainMismatch, Op: "ReadFunction", Identifier: identifier, Details: "unknown opcode"}
	}
	if sig.Dynamic {
		return f.AddFunctionCallNode(identifier, displayName, tag, 0, nil, nil)
	}
	if len(sig.Configs) == 0 {
		return f.AddNode(op, identifier, displayName, tag)
	}
	cfg := TypeUnset
	for _, oc := range outChildren {
		if t, ok := ParsePortType(oc.typ); ok {
			cfg = t
			break
		}
	}
	if cfg == TypeUnset {
		return nil, &Error{Kind: KindMalformedXML, Op: "ReadFunction", Identifier: identifier, Details: "cannot determine node configuration from output type"}
	}
	return f.AddConfiguredNode(op, cfg, identifier, displayName, tag)
}

// attachDynamicPorts builds FunctionCall's caller-supplied input/output
// ports (beyond the fixed "functionid" input materialized by
// AddFunctionCallNode) directly from the node's own child declarations,
// since no static catalog template exists for them.
func attachDynamicPorts(n *Node, inChildren, outChildren []childPort) error {
	for _, ic := range inChildren {
		if ic.identifier == "functionid" {
			continue
		}
		t, ok := ParsePortType(ic.typ)
		if !ok {
			return &Error{Kind: KindMalformedXML, Op: "ReadFunction", NodeID: n.Identifier, PortID: ic.identifier, Details: "dynamic input missing type"}
		}
		n.Inputs = append(n.Inputs, &Port{ID: ic.identifier, DisplayName: ic.identifier, Type: t, Side: SideNodeInput, node: n, function: n.function})
	}
	for _, oc := range outChildren {
		t, ok := ParsePortType(oc.typ)
		if !ok {
			return &Error{Kind: KindMalformedXML, Op: "ReadFunction", NodeID: n.Identifier, PortID: oc.identifier, Details: "dynamic output missing type"}
		}
		n.Outputs = append(n.Outputs, &Port{ID: oc.identifier, DisplayName: oc.identifier, Type: t, Side: SideNodeOutput, node: n, function: n.function})
	}
	return nil
}

// bindLiteralExtras parses a node's own opcode-specific attributes
// (constant/vector/matrix literals, accuraterange, scalarOutputName,
// vectorInputName, the ConstResourceID literal) directly off its start
// element, gated the same way the Node setters gate them.
func bindLiteralExtras(n *Node, attrs []xml.Attr, opts ReadOptions) error {
	sig := n.signature()

	if sig.HasExtra(ExtraConstant) {
		if v, ok := findAttr(attrs, "value"); ok {
			f, err := parseFloat(v)
			if err != nil {
				return &Error{Kind: KindMalformedXML, Op: "ReadFunction", NodeID: n.Identifier, Details: "invalid value"}
			}
			if err := n.SetConstant(f); err != nil {
				return err
			}
		}
	}

	if sig.HasExtra(ExtraVector) {
		x, okx := findAttr(attrs, "x")
		y, oky := findAttr(attrs, "y")
		z, okz := findAttr(attrs, "z")
		if okx || oky || okz {
			vx, err1 := parseFloat(x)
			vy, err2 := parseFloat(y)
			vz, err3 := parseFloat(z)
			if err1 != nil || err2 != nil || err3 != nil {
				return &Error{Kind: KindMalformedXML, Op: "ReadFunction", NodeID: n.Identifier, Details: "invalid x/y/z"}
			}
			if err := n.SetVector(vx, vy, vz); err != nil {
				return err
			}
		}
	}

	if sig.HasExtra(ExtraMatrix) {
		var m [16]float64
		any := false
		for i, name := range matrixComponentNames {
			if v, ok := findAttr(attrs, name); ok {
				any = true
				f, err := parseFloat(v)
				if err != nil {
					return &Error{Kind: KindMalformedXML, Op: "ReadFunction", NodeID: n.Identifier, Details: "invalid " + name}
				}
				m[i] = f
			}
		}
		if any {
			if err := n.SetMatrix(m); err != nil {
				return err
			}
		}
	}

	if sig.HasExtra(ExtraResourceID) {
		if v, ok := findAttr(attrs, "value"); ok {
			id, err := parseUint32(v)
			if err != nil {
				return &Error{Kind: KindMalformedXML, Op: "ReadFunction", NodeID: n.Identifier, Details: "invalid resource id"}
			}
			if err := n.SetModelResourceID(id); err != nil {
				return err
			}
		}
	}

	if sig.HasExtra(ExtraAccurateRange) {
		if v, ok := findAttr(attrs, "accuraterange"); ok {
			f, err := parseFloat(v)
			if err != nil {
				return &Error{Kind: KindMalformedXML, Op: "ReadFunction", NodeID: n.Identifier, Details: "invalid accuraterange"}
			}
			if err := n.SetAccurateRange(f, opts.Strict); err != nil {
				return err
			}
		}
	}

	if sig.HasExtra(ExtraScalarOutputName) {
		if v, ok := findAttr(attrs, "scalarOutputName"); ok {
			if err := n.SetScalarOutputName(v); err != nil {
				return err
			}
		}
	}

	if sig.HasExtra(ExtraVectorInputName) {
		if v, ok := findAttr(attrs, "vectorInputName"); ok {
			if err := n.SetVectorInputName(v); err != nil {
				return err
			}
		}
	}

	return nil
}

func bindNodeInputs(n *Node, inChildren []childPort) ([]pendingRef, error) {
	var refs []pendingRef
	for i, ic := range inChildren {
		var p *Port
		if ic.hasID {
			p = n.Input(ic.identifier)
		}
		if p == nil && i < len(n.Inputs) {
			p = n.Inputs[i]
		}
		if p == nil {
			continue
		}
		if ic.hasRef {
			refs = append(refs, pendingRef{consumer: p, ref: ic.ref})
			continue
		}
		if ic.hasDef {
			v, err := parseFloat(ic.def)
			if err != nil {
				return nil, &Error{Kind: KindMalformedXML, Op: "ReadFunction", NodeID: n.Identifier, PortID: p.ID, Details: "invalid default"}
			}
			p.Default = &v
		}
	}
	return refs, nil
}

// resolvePending links every collected reference against the function's
// identifier tables. A bare identifier (no ".") names a function-level
// input; a "node.port" reference names a node output.
func resolvePending(f *ImplicitFunction, pending []pendingRef, opts ReadOptions, warnings *[]Warning) error {
	for _, pr := range pending {
		producer, err := resolveRef(f, pr.ref)
		if err != nil {
			if opts.Lenient {
				*warnings = append(*warnings, Warning{Kind: KindDanglingReference, Element: pr.ref, Message: "unresolved ref, input left unlinked"})
				continue
			}
			return err
		}
		if err := f.AddLink(producer, pr.consumer); err != nil {
			return err
		}
		if owner := pr.consumer.Node(); owner != nil && owner.signature().HasExtra(ExtraFunctionID) && pr.consumer.ID == "functionid" {
			if src := producer.Node(); src != nil && src.Opcode == OpConstResourceID {
				if rid, err := src.GetModelResourceID(); err == nil {
					_ = owner.SetFunctionID(rid)
				}
			}
		}
	}
	return nil
}

func resolveRef(f *ImplicitFunction, ref string) (*Port, error) {
	if nodeID, portID, ok := strings.Cut(ref, "."); ok {
		n := f.NodeByIdentifier(nodeID)
		if n == nil {
			return nil, &Error{Kind: KindDanglingReference, Op: "ReadFunction", Identifier: ref, Details: "no node with this identifier"}
		}
		p := n.Output(portID)
		if p == nil {
			return nil, &Error{Kind: KindDanglingReference, Op: "ReadFunction", Identifier: ref, Details: "node has no such output"}
		}
		return p, nil
	}
	for _, p := range f.Inputs {
		if p.ID == ref {
			return p, nil
		}
	}
	return nil, &Error{Kind: KindDanglingReference, Op: "ReadFunction", Identifier: ref, Details: "no function input with this identifier"}
}

func findAttr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
