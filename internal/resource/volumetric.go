package resource

import (
	"fmt"

	"github.com/threemf-go/implicit/internal/implicit"
)

// VolumetricColor references a function by resource-id plus the Vector
// output carrying the color channel.
type VolumetricColor struct {
	FunctionID uint32
	Channel    string
}

// Resolve looks up the color function and its Vector-typed output.
func (c VolumetricColor) Resolve(s *Store) (*implicit.ImplicitFunction, *implicit.Port, error) {
	fn, ok := s.ResolveFunction(c.FunctionID)
	if !ok {
		return nil, nil, &implicit.Error{Kind: implicit.KindDanglingReference, Op: "VolumetricColor.Resolve", Identifier: fmt.Sprint(c.FunctionID)}
	}
	for _, p := range fn.Outputs {
		if p.ID == c.Channel {
			if p.Type != implicit.Vector {
				return nil, nil, &implicit.Error{Kind: implicit.KindTypeMismatch, Op: "VolumetricColor.Resolve", PortID: c.Channel, Details: "color output must be vector"}
			}
			return fn, p, nil
		}
	}
	return nil, nil, &implicit.Error{Kind: implicit.KindDanglingReference, Op: "VolumetricColor.Resolve", PortID: c.Channel, Details: "function has no such output"}
}

// VolumetricProperty references a function by resource-id plus a named
// Scalar output. PropertyName is the consumer's logical property name
// (e.g. "density"); it need not equal Channel, the output port's own
// identifier.
type VolumetricProperty struct {
	FunctionID   uint32
	Channel      string
	PropertyName string
}

// Resolve looks up the property function and its Scalar-typed output.
func (p VolumetricProperty) Resolve(s *Store) (*implicit.ImplicitFunction, *implicit.Port, error) {
	fn, ok := s.ResolveFunction(p.FunctionID)
	if !ok {
		return nil, nil, &implicit.Error{Kind: implicit.KindDanglingReference, Op: "VolumetricProperty.Resolve", Identifier: fmt.Sprint(p.FunctionID)}
	}
	for _, out := range fn.Outputs {
		if out.ID == p.Channel {
			if out.Type != implicit.Scalar {
				return nil, nil, &implicit.Error{Kind: implicit.KindTypeMismatch, Op: "VolumetricProperty.Resolve", PortID: p.Channel, Details: "property output must be scalar"}
			}
			return fn, out, nil
		}
	}
	return nil, nil, &implicit.Error{Kind: implicit.KindDanglingReference, Op: "VolumetricProperty.Resolve", PortID: p.Channel, Details: "function has no such output"}
}
