// Package queries contains read-only operations over the persistence layer.
// Query handlers bypass the domain model and read with raw SQL, returning
// flat response structures shaped for the transport layer.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves a company's orders, optionally filtered by
// status, newest first, with offset pagination.
//
// Example:
//
//	query, err := NewGetOrdersQuery(companyID, order.Packing, 1)
//	if err != nil {
//	    return err
//	}
//	orders, err := NewGetOrdersQueryHandler(db).Handle(ctx, query)
type GetOrdersQuery struct {
	companyID kernel.UUID
	status    order.Status
	page      int
	pageSize  int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for a company's orders. A zero status
// means no status filter; pages are 1-based and the page size is capped.
func NewGetOrdersQuery(companyID kernel.UUID, status order.Status, page int) (GetOrdersQuery, error) {
	q := GetOrdersQuery{
		status:   status,
		pageSize: defaultPageSize,
		guard:    guard.NewConstructorGuard(),
	}

	if err := companyID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	q.companyID = companyID
	q.page = max(page, 1)
	return q, nil
}

// WithPageSize overrides the page size, clamped to [1, maxPageSize].
func (q GetOrdersQuery) WithPageSize(pageSize int) GetOrdersQuery {
	q.pageSize = min(max(pageSize, 1), maxPageSize)
	return q
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// CompanyID returns the identifier of the company whose orders are listed.
func (q GetOrdersQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// Status returns the status filter, or order.Unknown when unfiltered.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

// Offset returns the row offset derived from the page number.
func (q GetOrdersQuery) Offset() int {
	return (q.page - 1) * q.pageSize
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.pageSize
}

// GetOrdersQueryResponse represents one order row in the listing.
type GetOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	Status      string
	Destination string
	PlannedQty  int
	ReceivedQty int
	PackedQty   int
	CreatedAt   time.Time
	CompletedAt *time.Time
}
