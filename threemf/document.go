package threemf

import (
	"encoding/xml"
	"io"

	"github.com/threemf-go/implicit/internal/implicit"
)

// Warning is a non-fatal codec read diagnostic.
type Warning = implicit.Warning

// ReadOptions configures ReadFunction / ReadFunctionFrom.
type ReadOptions = implicit.ReadOptions

// WriteOptions configures WriteFunction / WriteFunctionTo.
type WriteOptions = implicit.WriteOptions

// ReadFunction parses one <implicitfunction> element from dec. dec must
// have just produced the element's xml.StartElement token (the caller's
// own dispatch loop over the surrounding model XML hands it off here,
// the way a <resources> element dispatcher would for any other resource
// kind); ReadFunction consumes every token through the matching end
// element.
func ReadFunction(dec *xml.Decoder, start xml.StartElement, opts ReadOptions) (*ImplicitFunction, []Warning, error) {
	return implicit.ReadFunction(dec, start, opts)
}

// ReadFunctionFrom parses a standalone <implicitfunction>...</implicitfunction>
// document from r, for callers testing or tooling against the fragment in
// isolation rather than as part of a full model part.
func ReadFunctionFrom(r io.Reader, opts ReadOptions) (*ImplicitFunction, []Warning, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, &Error{Kind: implicit.KindMalformedXML, Op: "ReadFunctionFrom", Details: err.Error()}
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "implicitfunction" {
				return nil, nil, &Error{Kind: implicit.KindMalformedXML, Op: "ReadFunctionFrom", Details: "expected <implicitfunction>, got <" + se.Name.Local + ">"}
			}
			return ReadFunction(dec, se, opts)
		}
	}
}

// WriteFunction serializes fn as an <implicitfunction> element onto enc.
func WriteFunction(enc *xml.Encoder, fn *ImplicitFunction, opts WriteOptions) error {
	return implicit.WriteFunction(enc, fn, opts)
}

// WriteFunctionTo serializes fn as a standalone
// <implicitfunction>...</implicitfunction> document to w.
func WriteFunctionTo(w io.Writer, fn *ImplicitFunction, opts WriteOptions) error {
	enc := xml.NewEncoder(w)
	if err := WriteFunction(enc, fn, opts); err != nil {
		return err
	}
	return enc.Flush()
}
