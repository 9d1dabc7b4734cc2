// Package shipment provides the ShipmentRequest entity: a client's request
// to ship a processed order out of the warehouse on a delivery date. The
// shipment auto-closer marks expired requests Shipped and completes their
// linked orders.
package shipment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through the NewRequest or RestoreRequest factory functions.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

// RequestStatus is the lifecycle state of a shipment request.
type RequestStatus int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown RequestStatus = iota

	// StatusCreated is the initial status of a shipment request.
	StatusCreated

	// StatusShipped indicates the goods left the warehouse; set manually or
	// by the auto-closer once the delivery date has passed.
	StatusShipped
)

// String returns the human-readable name of the status.
func (s RequestStatus) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusShipped:
		return "Shipped"
	default:
		return "Unknown"
	}
}

// RequestStatusFromString parses the stored status name back into a
// RequestStatus. Returns an error for unknown names.
func RequestStatusFromString(s string) (RequestStatus, error) {
	switch s {
	case "Created":
		return StatusCreated, nil
	case "Shipped":
		return StatusShipped, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidError("shipment request status")
	}
}

// Validate checks if the RequestStatus value is valid.
func (s RequestStatus) Validate() error {
	if s != StatusCreated && s != StatusShipped {
		return errs.NewValueIsInvalidError("shipment request status")
	}
	return nil
}

// Request is a client's request to ship a processed order.
type Request struct {
	id            kernel.UUID
	companyID     kernel.UUID
	orderID       *kernel.UUID
	warehouseName string
	deliveryDate  *time.Time
	status        RequestStatus
	createdAt     time.Time

	isConstructed bool
}

// NewRequest creates a shipment request in Created status. The order link
// and delivery date are optional: requests without a date are never touched
// by the auto-closer.
func NewRequest(
	id, companyID kernel.UUID,
	orderID *kernel.UUID,
	warehouseName string,
	deliveryDate *time.Time,
	now time.Time,
) (*Request, error) {
	r := &Request{
		orderID:       orderID,
		warehouseName: warehouseName,
		deliveryDate:  deliveryDate,
		status:        StatusCreated,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setCompanyID(companyID),
	); err != nil {
		return nil, err
	}

	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// RestoreRequest reconstructs a shipment request from persistence.
func RestoreRequest(
	id, companyID kernel.UUID,
	orderID *kernel.UUID,
	warehouseName string,
	deliveryDate *time.Time,
	status RequestStatus,
	createdAt time.Time,
) (*Request, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	r, err := NewRequest(id, companyID, orderID, warehouseName, deliveryDate, createdAt)
	if err != nil {
		return nil, err
	}

	r.status = status
	return r, nil
}

// Validate ensures the Request instance was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// CompanyID returns the owning company's identifier.
func (r *Request) CompanyID() kernel.UUID {
	return r.companyID
}

// OrderID returns the linked order's identifier, or nil when the request is
// not tied to a specific order.
func (r *Request) OrderID() *kernel.UUID {
	return r.orderID
}

// WarehouseName returns the destination warehouse label.
func (r *Request) WarehouseName() string {
	return r.warehouseName
}

// DeliveryDate returns the planned delivery date, or nil if not set.
func (r *Request) DeliveryDate() *time.Time {
	return r.deliveryDate
}

// Status returns the current status of the request.
func (r *Request) Status() RequestStatus {
	return r.status
}

// CreatedAt returns the creation timestamp.
func (r *Request) CreatedAt() time.Time {
	return r.createdAt
}

// IsExpired reports whether the delivery date has passed relative to the
// given day. Requests without a delivery date never expire.
func (r *Request) IsExpired(today time.Time) bool {
	if r.deliveryDate == nil {
		return false
	}
	return !r.deliveryDate.After(today)
}

// MarkShipped transitions the request to Shipped. Returns a ConflictError
// when the request is already shipped, so a duplicate sweep cannot
// re-trigger order completion side effects.
func (r *Request) MarkShipped() error {
	if r.status == StatusShipped {
		return errs.NewConflictError("shipment request status", r.status.String())
	}
	r.status = StatusShipped
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	r.companyID = companyID
	return nil
}
