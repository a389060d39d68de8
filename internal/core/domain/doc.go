// Package domain defines the core navigation entities for campusnav.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CampusMap: The immutable topological map of named locations
//   - Edge: A directed traversal between two locations
//   - Path / Route: An ordered walk through the map
//   - Instruction: A single motion step compiled from a path
//   - NavigationSession: The runtime record of one execution
//   - NavigationResult: The structured outcome returned to callers
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
