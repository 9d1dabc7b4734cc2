package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPackingEventsQueryIsNotConstructed = errors.New(
	"GetPackingEventsQuery must be created via NewGetPackingEventsQuery constructor",
)

// GetPackingEventsQuery retrieves the packing audit ledger for one order,
// attributed to employee codes.
type GetPackingEventsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPackingEventsQuery creates a query for an order's packing events.
func NewGetPackingEventsQuery(orderID kernel.UUID) (GetPackingEventsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPackingEventsQuery{}, err
	}

	return GetPackingEventsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPackingEventsQueryIsNotConstructed if validation fails.
func (q GetPackingEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetPackingEventsQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose ledger is listed.
func (q GetPackingEventsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPackingEventsQueryResponse represents one ledger entry.
type GetPackingEventsQueryResponse struct {
	ID               kernel.UUID
	OrderLineID      kernel.UUID
	ProductID        kernel.UUID
	EmployeeCode     string
	Quantity         int
	PalletNumber     *int
	BoxNumber        *int
	Warehouse        string
	BoxBarcode       string
	MaterialsUsed    string
	TimeSpentMinutes *int
	CreatedAt        time.Time
}
