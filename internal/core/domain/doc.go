// Package domain defines the core business entities for pdsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Value: A dynamically shaped document node (input documents, CRM records)
//   - FieldMapping: One row of the declarative mapping table
//   - Person: A Pipedrive person as returned by the API
//   - PipedriveSettings: Credentials and client tuning
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
