package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderLinesQueryIsNotConstructed = errors.New(
	"GetOrderLinesQuery must be created via NewGetOrderLinesQuery constructor",
)

// GetOrderLinesQuery retrieves the lines of one order together with the
// referenced product's name and barcode.
type GetOrderLinesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderLinesQuery creates a query for an order's lines.
func NewGetOrderLinesQuery(orderID kernel.UUID) (GetOrderLinesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderLinesQuery{}, err
	}

	return GetOrderLinesQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderLinesQueryIsNotConstructed if validation fails.
func (q GetOrderLinesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderLinesQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose lines are listed.
func (q GetOrderLinesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderLinesQueryResponse represents one order line with product details.
type GetOrderLinesQueryResponse struct {
	ID             kernel.UUID
	ProductID      kernel.UUID
	ProductName    string
	Barcode        string
	Destination    string
	PlannedQty     int
	ReceivedQty    int
	PackedQty      int
	DefectQty      int
	AdjustmentQty  int
	AdjustmentNote string
}
