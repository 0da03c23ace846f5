// Package kernel provides core domain primitives for the marketplace system.
// It implements the fundamental building blocks used throughout the domain
// model, following Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: A decimal-backed value object for monetary amounts
//   - Address: A value object holding the delivery address snapshot captured at checkout
//
// These primitives enforce domain invariants at construction, are immutable,
// and are safe for concurrent use.
package kernel
