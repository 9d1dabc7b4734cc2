package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderLinesQueryHandler lists the lines of an order joined with product
// name and barcode for display and barcode scanning flows.
type GetOrderLinesQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderLinesQueryHandler creates a handler for order line listings.
func NewGetOrderLinesQueryHandler(db *gorm.DB) GetOrderLinesQueryHandler {
	return GetOrderLinesQueryHandler{db: db}
}

// Handle executes the query. An order without lines yields an empty slice,
// not an error; existence checks belong to the write side.
func (h GetOrderLinesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderLinesQuery,
) ([]GetOrderLinesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.product_id,
			p.name,
			p.barcode,
			l.destination,
			l.planned_qty,
			l.received_qty,
			l.packed_qty,
			l.defect_qty,
			l.adjustment_qty,
			l.adjustment_note
		FROM order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id = ?
		ORDER BY l.id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]GetOrderLinesQueryResponse, 0)
	for rows.Next() {
		var resp GetOrderLinesQueryResponse
		var id, productID uuid.UUID

		err = rows.Scan(
			&id,
			&productID,
			&resp.ProductName,
			&resp.Barcode,
			&resp.Destination,
			&resp.PlannedQty,
			&resp.ReceivedQty,
			&resp.PackedQty,
			&resp.DefectQty,
			&resp.AdjustmentQty,
			&resp.AdjustmentNote,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		lines = append(lines, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
