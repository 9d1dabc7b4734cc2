package services

import (
	"time"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/model/product"
)

// PackingService is a domain service coordinating a packing call across the
// order, product and employee aggregates, producing the append-only packing
// event.
//
// Key responsibilities:
//   - Resolving the order line and defending against product mismatches
//   - Applying the overpack guard and status re-derivation on the order
//   - Decrementing product stock (floored at zero)
//   - Producing the audit event bound to the packing employee
//
// The conditional persistence update that makes the overpack guard safe
// under concurrency is the repository's job; this service encodes the
// domain-level rules for a single consistent snapshot.
type PackingService struct{}

// NewPackingService creates a new PackingService instance.
func NewPackingService() PackingService {
	return PackingService{}
}

// Record applies a packing call of the given quantity against the order and
// returns the resulting packing event.
//
// Validation and effects:
//   - the order, product and employee must be properly constructed
//   - the line must belong to the order and reference the product
//   - the order status and the line remainder must allow the quantity
//   - order and line packed totals grow, order status is re-derived
//   - product stock shrinks by the quantity, floored at zero
func (s PackingService) Record(
	o *order.Order,
	lineID kernel.UUID,
	p *product.Product,
	emp *employee.Employee,
	quantity int,
	meta packing.Meta,
	now time.Time,
) (*packing.Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := emp.Validate(); err != nil {
		return nil, err
	}

	line, err := o.LineForPacking(lineID, p.ID())
	if err != nil {
		return nil, err
	}

	if err = o.RecordPacking(line, quantity, now); err != nil {
		return nil, err
	}

	p.AdjustStock(-quantity, 0)

	return packing.NewEvent(
		kernel.NewUUID(),
		o.ID(),
		line.ID(),
		p.ID(),
		emp.ID(),
		quantity,
		meta,
		now,
	)
}
