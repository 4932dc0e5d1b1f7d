package implicit

import (
	"encoding/xml"
	"strconv"
)

// WriteFunction serializes f as an <implicitfunction> element, positioning
// the encoder at the element's start and end tokens. It writes function
// inputs, then function outputs, then nodes, all in the slice order
// callers built them in (AddInput/AddOutput/AddNode* append order),
// since that order is what ReadFunction reproduces on a subsequent read
// and round-trip fidelity depends on it.
func WriteFunction(enc *xml.Encoder, f *ImplicitFunction, opts WriteOptions) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "implicitfunction"},
		Attr: []xml.Attr{attr("id", strconv.FormatUint(uint64(f.ResourceID), 10))},
	}
	if f.DisplayName != "" {
		start.Attr = append(start.Attr, attr("displayname", f.DisplayName))
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	for _, p := range f.Inputs {
		if err := checkCancelled(opts.Ctx); err != nil {
			return err
		}
		if err := writeFunctionPort(enc, "in", p, false); err != nil {
			return err
		}
	}
	for _, p := range f.Outputs {
		if err := checkCancelled(opts.Ctx); err != nil {
			return err
		}
		if err := writeFunctionPort(enc, "out", p, true); err != nil {
			return err
		}
	}
	for _, n := range f.Nodes {
		if err := checkCancelled(opts.Ctx); err != nil {
			return err
		}
		if err := writeNode(enc, n); err != nil {
			return err
		}
	}

	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

func writeFunctionPort(enc *xml.Encoder, elem string, p *Port, withRef bool) error {
	start := xml.StartElement{Name: xml.Name{Local: elem}}
	start.Attr = append(start.Attr, attr("identifier", p.ID))
	if p.DisplayName != "" {
		start.Attr = append(start.Attr, attr("displayname", p.DisplayName))
	}
	start.Attr = append(start.Attr, attr("type", p.Type.String()))
	if withRef && p.Source != nil {
		start.Attr = append(start.Attr, attr("ref", p.Source.qualifiedRef()))
	}
	return writeEmptyElement(enc, start)
}

func writeNode(enc *xml.Encoder, n *Node) error {
	sig := n.signature()
	start := xml.StartElement{Name: xml.Name{Local: n.Opcode.ElementName()}}
	start.Attr = append(start.Attr, attr("identifier", n.Identifier))
	if n.DisplayName != "" {
		start.Attr = append(start.Attr, attr("displayname", n.DisplayName))
	}
	if n.Tag != "" {
		start.Attr = append(start.Attr, attr("tag", n.Tag))
	}
	start.Attr = append(start.Attr, writeNodeExtras(n, sig)...)

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, p := range n.Inputs {
		if err := writeNodePort(enc, "in", p); err != nil {
			return err
		}
	}
	for _, p := range n.Outputs {
		if err := writeNodePort(enc, "out", p); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

func writeNodeExtras(n *Node, sig Signature) []xml.Attr {
	var attrs []xml.Attr
	if sig.HasExtra(ExtraConstant) && n.payload.constantSet {
		attrs = append(attrs, attr("value", formatFloat(n.payload.constant)))
	}
	if sig.HasExtra(ExtraVector) && n.payload.vectorSet {
		v := n.payload.vector
		attrs = append(attrs,
			attr("x", formatFloat(v[0])),
			attr("y", formatFloat(v[1])),
			attr("z", formatFloat(v[2])),
		)
	}
	if sig.HasExtra(ExtraMatrix) && n.payload.matrixSet {
		m := n.payload.matrix
		for i, name := range matrixComponentNames {
			attrs = append(attrs, attr(name, formatFloat(m[i])))
		}
	}
	if sig.HasExtra(ExtraResourceID) && n.payload.resourceIDSet {
		attrs = append(attrs, attr("value", strconv.FormatUint(uint64(n.payload.resourceID), 10)))
	}
	if sig.HasExtra(ExtraAccurateRange) && n.payload.accurateRange != 0 {
		attrs = append(attrs, attr("accuraterange", formatFloat(n.payload.accurateRange)))
	}
	if sig.HasExtra(ExtraScalarOutputName) && n.payload.scalarOutputName != "" {
		attrs = append(attrs, attr("scalarOutputName", n.payload.scalarOutputName))
	}
	if sig.HasExtra(ExtraVectorInputName) && n.payload.vectorInputName != "" {
		attrs = append(attrs, attr("vectorInputName", n.payload.vectorInputName))
	}
	return attrs
}

func writeNodePort(enc *xml.Encoder, elem string, p *Port) error {
	start := xml.StartElement{Name: xml.Name{Local: elem}}
	start.Attr = append(start.Attr,
		attr("identifier", p.ID),
		attr("type", p.Type.String()),
	)
	if p.Side == SideNodeInput {
		if p.Source != nil {
			start.Attr = append(start.Attr, attr("ref", p.Source.qualifiedRef()))
		} else if p.Default != nil {
			start.Attr = append(start.Attr, attr("default", formatFloat(*p.Default)))
		}
	}
	return writeEmptyElement(enc, start)
}

func writeEmptyElement(enc *xml.Encoder, start xml.StartElement) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
