// Package implicit provides the in-memory graph model, validator, and XML
// codec for a 3MF implicit function: a directed acyclic graph of typed
// math nodes that defines a density, color, or level-set field implicitly
// rather than through an explicit mesh.
//
// Key components:
//   - catalog: a process-wide, immutable map from Opcode to Signature
//     describing every node's legal ports and payload fields
//   - ImplicitFunction: an ordered graph of Nodes and their typed Ports
//   - Validator: port conformance, link conformance, and reference
//     resolution checks, reported as a slice of Diagnostics
//   - Codec: XML reader/writer for the <implicitfunction> element
//
// The package does not evaluate a function numerically: there is no
// sampling or meshing of the graph here, only its structure.
package implicit
