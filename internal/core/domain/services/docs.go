// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the marketplace. It
// implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - OrderAggregateBuilder: assembles a multi-seller Order aggregate from
//     flat purchase lines, grouping by store and apportioning shipping
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
