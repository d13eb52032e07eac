// Package kernel provides shared value objects for the home-office domain model.
//
// The package includes:
//   - UUID: a value object used to mint order identifiers
//   - TimeWindow: a closed interval of instants used by range queries
//
// Both types are immutable and safe for concurrent use.
package kernel
