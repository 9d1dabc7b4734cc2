package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNumberIsRequired is returned when an order is created without
	// an allocated order number.
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// Order represents a supply order in the system. It is the aggregate root
// that manages the receiving and packing ledger and the order lifecycle from
// intake through shipment completion.
//
// Order maintains these invariants:
//   - At least one line, no two lines with the same (product, destination) pair
//   - plannedQty equals the sum of line planned quantities and is immutable
//   - receivedQty equals the sum of line received quantities
//   - packedQty equals the sum of line packed quantities
//   - Status transitions follow the lifecycle defined by Status
type Order struct {
	id          kernel.UUID
	companyID   kernel.UUID
	orderNumber string
	status      Status
	destination string
	plannedQty  int
	receivedQty int
	packedQty   int
	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
	lines       []*Line

	isConstructed bool
}

// ReceivingUpdate carries the physical receiving counts submitted for one
// order line when receiving is completed.
type ReceivingUpdate struct {
	LineID         kernel.UUID
	ReceivedQty    int
	DefectQty      int
	AdjustmentQty  int
	AdjustmentNote string
}

// ReceivingResult reports the totals applied by CompleteReceiving.
type ReceivingResult struct {
	ReceivedTotal int
	DefectTotal   int
}

// NewOrder creates a new supply order in ReceivingPending status.
// Lines must be non-empty, every line must be constructed via NewLine, and
// no two lines may share the same (product, destination) pair, since such
// lines would be ambiguous when resolving packing calls later.
//
// The planned quantity is computed as the sum of line planned quantities
// and never changes afterwards.
func NewOrder(
	id kernel.UUID,
	companyID kernel.UUID,
	orderNumber string,
	destination string,
	lines []*Line,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        ReceivingPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCompanyID(companyID),
		o.setOrderNumber(orderNumber),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.destination = destination
	for _, line := range o.lines {
		o.plannedQty += line.PlannedQty()
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence along with its lines.
// Used by repositories; the status must be a valid lifecycle value.
func RestoreOrder(
	id kernel.UUID,
	companyID kernel.UUID,
	orderNumber string,
	status Status,
	destination string,
	plannedQty, receivedQty, packedQty int,
	createdAt, updatedAt time.Time,
	completedAt *time.Time,
	lines []*Line,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(id, companyID, orderNumber, destination, lines, createdAt)
	if err != nil {
		return nil, err
	}

	o.status = status
	o.plannedQty = plannedQty
	o.receivedQty = receivedQty
	o.packedQty = packedQty
	o.updatedAt = updatedAt
	o.completedAt = completedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CompanyID returns the owning company's identifier.
func (o *Order) CompanyID() kernel.UUID {
	return o.companyID
}

// OrderNumber returns the unique human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Destination returns the order-level destination label.
func (o *Order) Destination() string {
	return o.destination
}

// PlannedQty returns the immutable planned total declared at creation.
func (o *Order) PlannedQty() int {
	return o.plannedQty
}

// ReceivedQty returns the received total across all lines.
func (o *Order) ReceivedQty() int {
	return o.receivedQty
}

// PackedQty returns the packed total across all lines.
func (o *Order) PackedQty() int {
	return o.packedQty
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CompletedAt returns the completion timestamp, or nil if the order has not
// been completed.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Lines returns the order's lines.
func (o *Order) Lines() []*Line {
	return o.lines
}

// LineByID returns the line with the given identifier, or an
// ObjectNotFoundError if no such line belongs to this order.
func (o *Order) LineByID(lineID kernel.UUID) (*Line, error) {
	for _, line := range o.lines {
		if line.ID().IsEqual(lineID) {
			return line, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderLine", lineID.String())
}

// LineForPacking resolves the line for a packing call. The line must belong
// to this order and must reference the given product; the product check
// defends against ambiguous same-product lines with different destination
// labels being resolved by product alone.
func (o *Order) LineForPacking(lineID, productID kernel.UUID) (*Line, error) {
	line, err := o.LineByID(lineID)
	if err != nil {
		return nil, err
	}
	if !line.ProductID().IsEqual(productID) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"product",
			fmt.Errorf("line %s does not reference product %s", lineID, productID),
		)
	}
	return line, nil
}

// TotalDefect returns the defect total across all lines.
func (o *Order) TotalDefect() int {
	total := 0
	for _, line := range o.lines {
		total += line.DefectQty()
	}
	return total
}

// EffectivePlan returns the quantity that must be packed for the order to
// become ReadyToShip: the received total minus all defects.
func (o *Order) EffectivePlan() int {
	return o.receivedQty - o.TotalDefect()
}

// CompleteReceiving applies the physical receiving counts to the order.
// It is a one-time transition from ReceivingPending to Received; calling it
// in any later status returns a ConflictError.
//
// Every update must reference a line of this order and satisfy the line's
// quantity invariants. Validation runs for all updates before any line is
// mutated, so a failing update leaves the whole aggregate unchanged.
//
// On success the order's received total is recomputed from its lines, the
// status becomes Received, and the applied totals are returned.
func (o *Order) CompleteReceiving(updates []ReceivingUpdate, now time.Time) (ReceivingResult, error) {
	newStatus, err := o.status.CompleteReceiving()
	if err != nil {
		return ReceivingResult{}, err
	}

	type pendingUpdate struct {
		line   *Line
		update ReceivingUpdate
	}

	pending := make([]pendingUpdate, 0, len(updates))
	for _, update := range updates {
		line, lineErr := o.LineByID(update.LineID)
		if lineErr != nil {
			return ReceivingResult{}, lineErr
		}
		if update.ReceivedQty < 0 || update.DefectQty < 0 || update.AdjustmentQty < 0 {
			return ReceivingResult{}, errs.NewValueIsInvalidErrorWithCause(
				"receiving quantities",
				fmt.Errorf("line %s: quantities must be non-negative", update.LineID),
			)
		}
		if update.ReceivedQty < update.DefectQty+update.AdjustmentQty {
			return ReceivingResult{}, errs.NewValueIsInvalidErrorWithCause(
				"receiving quantities",
				fmt.Errorf("line %s: received %d is less than defect %d + adjustment %d",
					update.LineID, update.ReceivedQty, update.DefectQty, update.AdjustmentQty),
			)
		}
		pending = append(pending, pendingUpdate{line: line, update: update})
	}

	result := ReceivingResult{}
	for _, p := range pending {
		if applyErr := p.line.ApplyReceiving(
			p.update.ReceivedQty,
			p.update.DefectQty,
			p.update.AdjustmentQty,
			p.update.AdjustmentNote,
		); applyErr != nil {
			return ReceivingResult{}, applyErr
		}
		result.ReceivedTotal += p.update.ReceivedQty
		result.DefectTotal += p.update.DefectQty
	}

	o.receivedQty = 0
	for _, line := range o.lines {
		o.receivedQty += line.ReceivedQty()
	}

	o.status = newStatus
	o.updatedAt = now
	return result, nil
}

// RecordPacking applies a packing call of the given quantity to the line.
// The order must be past receiving, the quantity must be positive and must
// not exceed the line's packing remainder. On success the order and line
// packed totals grow by the quantity and the status is re-derived: Packing
// while the effective plan is not covered, ReadyToShip once it is.
func (o *Order) RecordPacking(line *Line, quantity int, now time.Time) error {
	if err := o.status.ValidatePack(); err != nil {
		return err
	}
	if err := line.AddPacked(quantity); err != nil {
		return err
	}

	o.packedQty += quantity

	newStatus, err := o.status.DerivePacking(o.packedQty, o.EffectivePlan())
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Complete marks the order as completed (shipped out). The order must be
// ReadyToShip; Completed is a final state.
func (o *Order) Complete(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	o.completedAt = &now
	return nil
}

// ForceComplete sets the order to Completed regardless of the current
// status, unless it is already completed. Used by the shipment auto-closer,
// which completes orders by delivery date rather than by packing progress.
func (o *Order) ForceComplete(now time.Time) error {
	if o.status == Completed {
		return errs.NewConflictError("order status", o.status.String())
	}

	o.status = Completed
	o.updatedAt = now
	o.completedAt = &now
	return nil
}

// OverrideStatus is the operator-correction escape hatch. It sets any valid
// status without consulting the state machine and without re-running stock
// effects; receiving stock mutations happen only in CompleteReceiving.
// It must not be used as a substitute for the derived transitions.
func (o *Order) OverrideStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.status = status
	o.updatedAt = now
	if status == Completed && o.completedAt == nil {
		o.completedAt = &now
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	o.companyID = companyID
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	type lineKey struct {
		productID   kernel.UUID
		destination string
	}

	seen := make(map[lineKey]bool, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		key := lineKey{productID: line.ProductID(), destination: line.Destination()}
		if seen[key] {
			return errs.NewValueIsInvalidErrorWithCause(
				"lines",
				fmt.Errorf("duplicate line for product %s and destination %q",
					line.ProductID(), line.Destination()),
			)
		}
		seen[key] = true
	}

	o.lines = lines
	return nil
}
