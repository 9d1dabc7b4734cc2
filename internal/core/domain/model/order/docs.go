// Package order provides domain entities and business logic for supply order
// management in the fulfillment system. It implements the Order aggregate
// root with its receiving and packing ledger and lifecycle management.
//
// The package includes:
//   - Order: The aggregate root that manages identity, quantity totals, and lifecycle
//   - Line: One (product, destination) entry carrying its own quantity ledger
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders are created with at least one line and a unique order number
//   - Receiving is a one-time transition applying stock and defect counts
//   - Packing is repeatable and guarded by each line's packing remainder
//   - Status follows ReceivingPending -> Received -> Packing -> ReadyToShip -> Completed
//   - Order totals always equal the sums of the corresponding line totals
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
