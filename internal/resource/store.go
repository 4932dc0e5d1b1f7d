// Package resource implements the model-level resource store that
// internal/implicit's Validator consults to resolve ResourceID references,
// plus the volumetric consumers (level set, color, property) that bind an
// implicit function output to another part of the model.
//
// Packaging, mesh geometry, and slice-stack resources live elsewhere;
// Store holds just enough about a resource (its kind and, for functions,
// the function itself) to answer the two questions the implicit-function
// subsystem needs: "does this id exist" and "what function does this id
// name".
package resource

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/threemf-go/implicit/internal/implicit"
)

// Kind distinguishes the resources a Store can hold. KindMesh and
// KindBeamLattice exist only so a resourceid node can point at them;
// their geometric content is an external collaborator's concern.
type Kind int

const (
	KindUnknown Kind = iota
	KindMesh
	KindFunction
	KindBeamLattice
)

// Resource is one entry in the store: a resource-id paired with its kind
// and, for KindFunction, the function itself.
type Resource struct {
	ID       uint32
	Kind     Kind
	Function *implicit.ImplicitFunction
}

// Store is the flat id→resource table the surrounding model owns: a
// single insertion-friendly table backing reference resolution rather
// than a relational schema, since packaging/relationship-part bookkeeping
// happens outside this package.
type Store struct {
	resources map[uint32]*Resource
}

// NewStore creates an empty resource store.
func NewStore() *Store {
	return &Store{resources: make(map[uint32]*Resource)}
}

// AddMesh registers a mesh resource under id, for resourceid nodes (e.g.
// BeamLattice's "beamlattice" input) to reference. The mesh body itself is
// out of scope; the store only needs to know the id is occupied.
func (s *Store) AddMesh(id uint32) {
	s.resources[id] = &Resource{ID: id, Kind: KindMesh}
}

// AddBeamLattice registers a beam-lattice resource under id.
func (s *Store) AddBeamLattice(id uint32) {
	s.resources[id] = &Resource{ID: id, Kind: KindBeamLattice}
}

// AddFunction registers fn under its own ResourceID.
func (s *Store) AddFunction(fn *implicit.ImplicitFunction) {
	s.resources[fn.ResourceID] = &Resource{ID: fn.ResourceID, Kind: KindFunction, Function: fn}
}

// NewSyntheticID mints a resource-id for a function or fixture constructed
// programmatically (test data, CLI scaffolding) that has not yet been
// assigned a model-level numeric id. It derives a non-zero 32-bit id from
// a random UUID rather than tracking a separate counter namespace, and
// retries until the id is not already registered in this store. Ids
// registered after the call are not considered, so a later registration
// may reuse a minted id.
func (s *Store) NewSyntheticID() uint32 {
	for {
		u := uuid.New()
		id := binary.BigEndian.Uint32(u[:4])
		if id == 0 {
			continue
		}
		if _, taken := s.resources[id]; !taken {
			return id
		}
	}
}

// Get returns the resource registered under id, if any.
func (s *Store) Get(id uint32) (*Resource, bool) {
	r, ok := s.resources[id]
	return r, ok
}

// Exists reports whether any resource is registered under id. Implements
// implicit.ResourceResolver.
func (s *Store) Exists(id uint32) bool {
	_, ok := s.resources[id]
	return ok
}

// ResolveFunction returns the function registered under id, if any resource
// is registered there and it is a function. Implements
// implicit.ResourceResolver.
func (s *Store) ResolveFunction(id uint32) (*implicit.ImplicitFunction, bool) {
	r, ok := s.resources[id]
	if !ok || r.Kind != KindFunction {
		return nil, false
	}
	return r.Function, true
}

// Functions returns every function resource in the store, in no particular
// order (map iteration); callers that need a stable order should sort by
// ResourceID.
func (s *Store) Functions() []*implicit.ImplicitFunction {
	var out []*implicit.ImplicitFunction
	for _, r := range s.resources {
		if r.Kind == KindFunction {
			out = append(out, r.Function)
		}
	}
	return out
}
