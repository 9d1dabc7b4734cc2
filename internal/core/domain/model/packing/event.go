// Package packing provides the append-only packing ledger for the
// fulfillment system. Every packing call against an order line is recorded
// as an Event; events are never mutated or deleted and form the audit trail
// for an order. The sum of event quantities for a line always equals the
// line's packed total.
package packing

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not
// created through the NewEvent or RestoreEvent factory functions.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Meta carries the optional physical-handling details attached to a packing
// event: pallet/box numbers, warehouse label, box barcode, and free-text
// materials and time notes.
type Meta struct {
	PalletNumber     *int
	BoxNumber        *int
	Warehouse        string
	BoxBarcode       string
	MaterialsUsed    string
	TimeSpentMinutes *int
}

// Event is one append-only entry of the packing ledger.
type Event struct {
	id          kernel.UUID
	orderID     kernel.UUID
	orderLineID kernel.UUID
	productID   kernel.UUID
	employeeID  kernel.UUID
	quantity    int
	meta        Meta
	createdAt   time.Time

	isConstructed bool
}

// NewEvent creates a packing event for the given order line. The quantity
// must be positive; the overpack guard against the line's remainder is
// enforced by the order aggregate and the conditional persistence update,
// not here.
func NewEvent(
	id kernel.UUID,
	orderID, orderLineID, productID, employeeID kernel.UUID,
	quantity int,
	meta Meta,
	now time.Time,
) (*Event, error) {
	event := &Event{
		meta:          meta,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		event.setID(id),
		event.setOrderID(orderID),
		event.setOrderLineID(orderLineID),
		event.setProductID(productID),
		event.setEmployeeID(employeeID),
		event.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return event, nil
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id kernel.UUID,
	orderID, orderLineID, productID, employeeID kernel.UUID,
	quantity int,
	meta Meta,
	createdAt time.Time,
) (*Event, error) {
	return NewEvent(id, orderID, orderLineID, productID, employeeID, quantity, meta, createdAt)
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this event belongs to.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// OrderLineID returns the order line this event belongs to.
func (e *Event) OrderLineID() kernel.UUID {
	return e.orderLineID
}

// ProductID returns the packed product.
func (e *Event) ProductID() kernel.UUID {
	return e.productID
}

// EmployeeID returns the warehouse employee who packed.
func (e *Event) EmployeeID() kernel.UUID {
	return e.employeeID
}

// Quantity returns the packed quantity (always positive).
func (e *Event) Quantity() int {
	return e.quantity
}

// Meta returns the physical-handling details of the event.
func (e *Event) Meta() Meta {
	return e.meta
}

// CreatedAt returns the time the event was recorded.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Event) setOrderLineID(orderLineID kernel.UUID) error {
	if err := orderLineID.Validate(); err != nil {
		return err
	}
	e.orderLineID = orderLineID
	return nil
}

func (e *Event) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	e.productID = productID
	return nil
}

func (e *Event) setEmployeeID(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}
	e.employeeID = employeeID
	return nil
}

func (e *Event) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	e.quantity = quantity
	return nil
}
