// Package services provides domain services for the fulfillment system.
// Domain services contain business logic that coordinates multiple
// aggregates and doesn't naturally belong to a single entity.
//
// The package includes:
//   - PackingService: Applies a packing call across the order, product and
//     employee aggregates and produces the append-only audit event
//
// Services are stateless and thread-safe.
package services
