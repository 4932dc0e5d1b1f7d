package resource

import (
	"fmt"

	"github.com/threemf-go/implicit/internal/implicit"
)

// LevelSet is a surface defined as the zero crossing of a scalar function
// output. It names the function by resource-id and the output port
// carrying the distance value; Resolve looks both up through a Store,
// which is the only behavior a level set has.
type LevelSet struct {
	FunctionID uint32
	Channel    string // output port identifier carrying the distance scalar
}

// Resolve looks up the level set's function and its distance-carrying
// output port, failing DanglingReference if the function doesn't exist and
// TypeMismatch if the named output isn't a Scalar.
func (l LevelSet) Resolve(s *Store) (*implicit.ImplicitFunction, *implicit.Port, error) {
	fn, ok := s.ResolveFunction(l.FunctionID)
	if !ok {
		return nil, nil, &implicit.Error{Kind: implicit.KindDanglingReference, Op: "LevelSet.Resolve", Identifier: fmt.Sprint(l.FunctionID)}
	}
	for _, p := range fn.Outputs {
		if p.ID == l.Channel {
			if p.Type != implicit.Scalar {
				return nil, nil, &implicit.Error{Kind: implicit.KindTypeMismatch, Op: "LevelSet.Resolve", PortID: l.Channel, Details: "level set output must be scalar"}
			}
			return fn, p, nil
		}
	}
	return nil, nil, &implicit.Error{Kind: implicit.KindDanglingReference, Op: "LevelSet.Resolve", PortID: l.Channel, Details: "function has no such output"}
}

// CandidateChannels lists fn's Scalar outputs, for callers constructing
// or editing a LevelSet to pick a Channel from.
func CandidateChannels(fn *implicit.ImplicitFunction) []string {
	var names []string
	for _, p := range fn.OutputsByType(implicit.Scalar) {
		names = append(names, p.ID)
	}
	return names
}
