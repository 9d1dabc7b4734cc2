package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPackingEventsQueryHandler lists the packing ledger of an order.
// Events are append-only, so the listing doubles as an audit trail.
type GetPackingEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetPackingEventsQueryHandler creates a handler for ledger listings.
func NewGetPackingEventsQueryHandler(db *gorm.DB) GetPackingEventsQueryHandler {
	return GetPackingEventsQueryHandler{db: db}
}

// Handle executes the query, oldest entries first.
func (h GetPackingEventsQueryHandler) Handle(
	ctx context.Context,
	query GetPackingEventsQuery,
) ([]GetPackingEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			e.id,
			e.order_line_id,
			e.product_id,
			w.code,
			e.quantity,
			e.pallet_number,
			e.box_number,
			e.warehouse,
			e.box_barcode,
			e.materials_used,
			e.time_spent_minutes,
			e.created_at
		FROM packing_events e
		JOIN warehouse_employees w ON w.id = e.employee_id
		WHERE e.order_id = ?
		ORDER BY e.created_at, e.id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]GetPackingEventsQueryResponse, 0)
	for rows.Next() {
		var resp GetPackingEventsQueryResponse
		var id, lineID, productID uuid.UUID
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&lineID,
			&productID,
			&resp.EmployeeCode,
			&resp.Quantity,
			&resp.PalletNumber,
			&resp.BoxNumber,
			&resp.Warehouse,
			&resp.BoxBarcode,
			&resp.MaterialsUsed,
			&resp.TimeSpentMinutes,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderLineID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
			return nil, err
		}
		if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		resp.CreatedAt = createdAt
		events = append(events, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
