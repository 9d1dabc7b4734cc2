package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists a company's orders from the database.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Results are sorted newest first so the
// current day's intake shows up on the first page.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_number,
			status,
			destination,
			planned_qty,
			received_qty,
			packed_qty,
			created_at,
			completed_at
		FROM orders
		WHERE company_id = ?
	`
	args := []any{query.CompanyID().Bytes()}

	if query.Status() != order.Unknown {
		sql += " AND status = ?"
		args = append(args, query.Status().String())
	}

	sql += " ORDER BY created_at DESC, id LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id uuid.UUID
		var createdAt time.Time
		var completedAt *time.Time

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Status,
			&resp.Destination,
			&resp.PlannedQty,
			&resp.ReceivedQty,
			&resp.PackedQty,
			&createdAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CreatedAt = createdAt
		resp.CompletedAt = completedAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
