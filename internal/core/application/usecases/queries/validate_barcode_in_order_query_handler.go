package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidateBarcodeInOrderQueryHandler resolves scanned barcodes to order
// lines. A barcode that matches no line of the order is a not-found
// condition, which tells the scanner operator the goods belong elsewhere.
type ValidateBarcodeInOrderQueryHandler struct {
	db *gorm.DB
}

// NewValidateBarcodeInOrderQueryHandler creates a handler for barcode checks.
func NewValidateBarcodeInOrderQueryHandler(db *gorm.DB) ValidateBarcodeInOrderQueryHandler {
	return ValidateBarcodeInOrderQueryHandler{db: db}
}

// Handle executes the barcode resolution.
func (h ValidateBarcodeInOrderQueryHandler) Handle(
	ctx context.Context,
	query ValidateBarcodeInOrderQuery,
) (ValidateBarcodeInOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateBarcodeInOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.product_id,
			p.name,
			l.destination,
			GREATEST(l.planned_qty - l.received_qty, 0),
			GREATEST(l.received_qty - l.defect_qty - l.packed_qty, 0)
		FROM order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id = ? AND p.barcode = ?
		ORDER BY l.id
		LIMIT 1
	`, query.OrderID().Bytes(), query.Barcode()).Row()

	var resp ValidateBarcodeInOrderQueryResponse
	var lineID, productID uuid.UUID

	err := row.Scan(
		&lineID,
		&productID,
		&resp.ProductName,
		&resp.Destination,
		&resp.RemainingToReceive,
		&resp.RemainingToPack,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ValidateBarcodeInOrderQueryResponse{},
			errs.NewObjectNotFoundError("barcode", query.Barcode())
	}
	if err != nil {
		return ValidateBarcodeInOrderQueryResponse{}, err
	}

	if resp.LineID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
		return ValidateBarcodeInOrderQueryResponse{}, err
	}
	if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return ValidateBarcodeInOrderQueryResponse{}, err
	}

	return resp, nil
}
