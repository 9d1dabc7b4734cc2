package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/company"
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
)

// CompanyRepository defines the persistence contract for companies.
type CompanyRepository interface {
	// Get retrieves a company by identifier.
	Get(ctx context.Context, id kernel.UUID) (*company.Company, error)
}

// ProductRepository defines the persistence contract for products and their
// stock counters.
type ProductRepository interface {
	// Get retrieves a product by identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// BelongToCompany reports whether every given product exists and is
	// owned by the company.
	BelongToCompany(ctx context.Context, companyID kernel.UUID, productIDs []kernel.UUID) (bool, error)

	// AdjustStock applies stock and defect deltas to a product as a single
	// update, flooring both counters at zero.
	AdjustStock(ctx context.Context, productID kernel.UUID, stockDelta, defectDelta int) error
}

// EmployeeRepository defines the persistence contract for the employee-code
// claim table. Both the code and the user carry unique constraints; Add
// surfaces a violation as a ConflictError so a lost first-claim race is
// reported the same way as an explicit collision.
type EmployeeRepository interface {
	// GetByCode retrieves a claim by employee code.
	GetByCode(ctx context.Context, code string) (*employee.Employee, error)

	// GetByUser retrieves the claim owned by the given user.
	GetByUser(ctx context.Context, userID kernel.UUID) (*employee.Employee, error)

	// Add inserts a new claim. Returns a ConflictError when the code or the
	// user is already claimed.
	Add(ctx context.Context, aggregate *employee.Employee) error
}

// PackingEventRepository defines the persistence contract for the
// append-only packing ledger. Events are only ever inserted.
type PackingEventRepository interface {
	// Add appends a packing event to the ledger.
	Add(ctx context.Context, event *packing.Event) error
}

// ShipmentRequestRepository defines the persistence contract for shipment
// requests.
type ShipmentRequestRepository interface {
	// FindExpired retrieves requests whose delivery date has passed and
	// whose status is not yet Shipped.
	FindExpired(ctx context.Context, today time.Time) ([]*shipment.Request, error)

	// Update persists changes to an existing shipment request.
	Update(ctx context.Context, aggregate *shipment.Request) error
}

// OrderNumberAllocator hands out daily order sequence numbers. Allocate
// must run inside the same transaction as the order insert: it takes an
// exclusive lock on the day's counter row (creating it at zero if absent)
// before incrementing, so concurrent allocations for one date never return
// the same number and an aborted transaction never burns a number.
type OrderNumberAllocator interface {
	Allocate(ctx context.Context, date time.Time) (int, error)
}
