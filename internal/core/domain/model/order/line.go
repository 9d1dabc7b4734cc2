package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine or RestoreLine factory functions.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")

// Line is one (product, destination) entry within an order, carrying its own
// quantity ledger through the receiving and packing workflow.
//
// Line maintains these invariants at all times:
//   - plannedQty is positive and immutable after creation
//   - receivedQty >= defectQty + adjustmentQty
//   - packedQty <= receivedQty - defectQty
type Line struct {
	id             kernel.UUID
	productID      kernel.UUID
	destination    string
	plannedQty     int
	receivedQty    int
	packedQty      int
	defectQty      int
	adjustmentQty  int
	adjustmentNote string

	isConstructed bool
}

// NewLine creates a new order line for the given product and destination
// label. The planned quantity must be positive.
func NewLine(id kernel.UUID, productID kernel.UUID, destination string, plannedQty int) (*Line, error) {
	line := &Line{isConstructed: true}

	if err := errors.Join(
		line.setID(id),
		line.setProductID(productID),
		line.setPlannedQty(plannedQty),
	); err != nil {
		return nil, err
	}

	line.destination = destination
	return line, nil
}

// RestoreLine reconstructs a line from persistence without re-running
// creation-time validation of the quantity ledger. Used by repositories.
func RestoreLine(
	id kernel.UUID,
	productID kernel.UUID,
	destination string,
	plannedQty, receivedQty, packedQty, defectQty, adjustmentQty int,
	adjustmentNote string,
) (*Line, error) {
	line, err := NewLine(id, productID, destination, plannedQty)
	if err != nil {
		return nil, err
	}

	line.receivedQty = receivedQty
	line.packedQty = packedQty
	line.defectQty = defectQty
	line.adjustmentQty = adjustmentQty
	line.adjustmentNote = adjustmentNote
	return line, nil
}

// Validate ensures the Line instance was properly constructed.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// ProductID returns the product this line refers to.
func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

// Destination returns the destination label for this line.
func (l *Line) Destination() string {
	return l.destination
}

// PlannedQty returns the quantity the client declared at order creation.
func (l *Line) PlannedQty() int {
	return l.plannedQty
}

// ReceivedQty returns the physically received quantity.
func (l *Line) ReceivedQty() int {
	return l.receivedQty
}

// PackedQty returns the quantity packed so far.
func (l *Line) PackedQty() int {
	return l.packedQty
}

// DefectQty returns the quantity received but deemed unusable.
func (l *Line) DefectQty() int {
	return l.defectQty
}

// AdjustmentQty returns the manual correction quantity (e.g. write-off).
func (l *Line) AdjustmentQty() int {
	return l.adjustmentQty
}

// AdjustmentNote returns the free-text note attached to the adjustment.
func (l *Line) AdjustmentNote() string {
	return l.adjustmentNote
}

// NetReceived returns received minus defects and adjustments, floored at
// zero. This is the amount added to usable product stock at receiving.
func (l *Line) NetReceived() int {
	net := l.receivedQty - l.defectQty - l.adjustmentQty
	if net < 0 {
		return 0
	}
	return net
}

// PackingRemainder returns how much of this line can still be packed:
// received minus defects minus what is already packed.
func (l *Line) PackingRemainder() int {
	return l.receivedQty - l.defectQty - l.packedQty
}

// ApplyReceiving records the physical receiving counts for the line.
// All quantities must be non-negative and the received quantity must cover
// defects plus adjustments, otherwise a validation error is returned and
// the line is left unchanged.
func (l *Line) ApplyReceiving(receivedQty, defectQty, adjustmentQty int, adjustmentNote string) error {
	if receivedQty < 0 || defectQty < 0 || adjustmentQty < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"receiving quantities",
			fmt.Errorf("received %d, defect %d, adjustment %d must all be non-negative",
				receivedQty, defectQty, adjustmentQty),
		)
	}
	if receivedQty < defectQty+adjustmentQty {
		return errs.NewValueIsInvalidErrorWithCause(
			"receiving quantities",
			fmt.Errorf("received %d is less than defect %d + adjustment %d",
				receivedQty, defectQty, adjustmentQty),
		)
	}

	l.receivedQty = receivedQty
	l.defectQty = defectQty
	l.adjustmentQty = adjustmentQty
	l.adjustmentNote = adjustmentNote
	return nil
}

// AddPacked increases the packed quantity after the overpack guard has
// passed. The quantity must be positive and must not exceed the packing
// remainder; on violation a ConflictError carrying the current remainder
// is returned.
func (l *Line) AddPacked(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if remainder := l.PackingRemainder(); quantity > remainder {
		return errs.NewConflictError("packing remainder", remainder)
	}

	l.packedQty += quantity
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setPlannedQty(plannedQty int) error {
	if plannedQty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"plannedQty",
			fmt.Errorf("%d is not greater than 0", plannedQty),
		)
	}
	l.plannedQty = plannedQty
	return nil
}
