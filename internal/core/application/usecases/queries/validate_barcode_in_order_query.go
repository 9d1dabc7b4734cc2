package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrValidateBarcodeInOrderQueryIsNotConstructed = errors.New(
		"ValidateBarcodeInOrderQuery must be created via NewValidateBarcodeInOrderQuery constructor",
	)
	ErrBarcodeIsRequired = errors.New("barcode is required")
)

// ValidateBarcodeInOrderQuery resolves a scanned product barcode against an
// order and reports how much of that product is still expected. Warehouse
// scanners call this before every receiving or packing action.
//
// Example:
//
//	query, err := NewValidateBarcodeInOrderQuery(orderID, "4600000000017")
//	if err != nil {
//	    return err
//	}
//	match, err := NewValidateBarcodeInOrderQueryHandler(db).Handle(ctx, query)
type ValidateBarcodeInOrderQuery struct {
	orderID kernel.UUID
	barcode string

	guard guard.ConstructorGuard
}

// NewValidateBarcodeInOrderQuery creates a barcode resolution query.
func NewValidateBarcodeInOrderQuery(orderID kernel.UUID, barcode string) (ValidateBarcodeInOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ValidateBarcodeInOrderQuery{}, err
	}

	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return ValidateBarcodeInOrderQuery{}, ErrBarcodeIsRequired
	}

	return ValidateBarcodeInOrderQuery{
		orderID: orderID,
		barcode: barcode,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrValidateBarcodeInOrderQueryIsNotConstructed if validation fails.
func (q ValidateBarcodeInOrderQuery) Validate() error {
	return q.guard.Validate(ErrValidateBarcodeInOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order the barcode is checked against.
func (q ValidateBarcodeInOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Barcode returns the scanned barcode.
func (q ValidateBarcodeInOrderQuery) Barcode() string {
	return q.barcode
}

// ValidateBarcodeInOrderQueryResponse reports the matched line and the
// remaining work for it. RemainingToReceive is against the plan;
// RemainingToPack is against the net received quantity.
type ValidateBarcodeInOrderQueryResponse struct {
	LineID             kernel.UUID
	ProductID          kernel.UUID
	ProductName        string
	Destination        string
	RemainingToReceive int
	RemainingToPack    int
}
