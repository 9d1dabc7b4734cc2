package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderRepository() OrderRepository

	// CompanyRepository returns a CompanyRepository instance bound to the current transaction.
	CompanyRepository() CompanyRepository

	// ProductRepository returns a ProductRepository instance bound to the current transaction.
	ProductRepository() ProductRepository

	// EmployeeRepository returns an EmployeeRepository instance bound to the current transaction.
	EmployeeRepository() EmployeeRepository

	// PackingEventRepository returns a PackingEventRepository instance bound to the current transaction.
	PackingEventRepository() PackingEventRepository

	// ShipmentRequestRepository returns a ShipmentRequestRepository instance bound to the current transaction.
	ShipmentRequestRepository() ShipmentRequestRepository

	// OrderNumberAllocator returns an OrderNumberAllocator bound to the current transaction.
	// Allocation locks the day's counter row until the transaction ends.
	OrderNumberAllocator() OrderNumberAllocator

	// PhotoEvidence returns a PhotoEvidence store bound to the current transaction.
	PhotoEvidence() PhotoEvidence
}
