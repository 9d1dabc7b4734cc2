package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their lines. Beyond plain CRUD it exposes the conditional updates the
// workflow's race-sensitive checks rely on: the one-time status transition,
// the overpack-guarded packed-quantity increment and the packed-total
// recalculation. Each must be a single statement whose outcome reveals
// whether the guard held.
type OrderRepository interface {
	// Add persists a new order aggregate together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and its lines. Only the
	// receiving flow may call it: the one-time status flip guarantees a
	// single writer there, while packing flows must never rewrite line rows
	// they did not lock.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateHeader persists the order lifecycle fields (status, timestamps),
	// leaving line rows and the header counters untouched.
	UpdateHeader(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its lines by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// TransitionStatus flips the order status from one value to another as
	// a single conditional update. Returns false without error when the
	// order was not in the expected source status, which signals that a
	// concurrent call already performed the transition.
	TransitionStatus(ctx context.Context, id kernel.UUID, from, to order.Status) (bool, error)

	// IncrementLinePacked atomically adds quantity to a line's packed total,
	// guarded by the line's packing remainder in the same statement.
	// Returns false without error when the guard rejected the increment.
	IncrementLinePacked(ctx context.Context, lineID kernel.UUID, quantity int) (bool, error)

	// RecalculatePackedTotal rewrites the header packed total as the sum of
	// the line rows and derives the order status from that sum against the
	// effective plan, in the same statement. Must run after every accepted
	// increment so the header never carries a stale snapshot's total.
	// Returns the recomputed total.
	RecalculatePackedTotal(ctx context.Context, id kernel.UUID, effectivePlan int, now time.Time) (int, error)

	// GetLine retrieves a single order line by identifier. Used to report a
	// fresh packing remainder after a rejected increment.
	GetLine(ctx context.Context, lineID kernel.UUID) (*order.Line, error)

	// CompleteByIDs bulk-completes the given orders unless already
	// completed, setting the completion timestamp. Returns the identifiers
	// of the orders actually transitioned.
	CompleteByIDs(ctx context.Context, ids []kernel.UUID, completedAt time.Time) ([]kernel.UUID, error)
}
