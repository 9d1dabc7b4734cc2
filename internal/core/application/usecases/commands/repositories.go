// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CompanyRepoFactory provides access to the company repository within a transaction.
	CompanyRepoFactory interface {
		CompanyRepository() ports.CompanyRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// EmployeeRepoFactory provides access to the employee claim repository within a transaction.
	EmployeeRepoFactory interface {
		EmployeeRepository() ports.EmployeeRepository
	}

	// PackingEventRepoFactory provides access to the packing ledger within a transaction.
	PackingEventRepoFactory interface {
		PackingEventRepository() ports.PackingEventRepository
	}

	// ShipmentRepoFactory provides access to the shipment request repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRequestRepository() ports.ShipmentRequestRepository
	}

	// NumberAllocatorFactory provides access to the daily order number
	// allocator. Allocation must share the caller's transaction so a
	// rollback releases the allocated number.
	NumberAllocatorFactory interface {
		OrderNumberAllocator() ports.OrderNumberAllocator
	}

	// PhotoEvidenceFactory provides access to the defect photo store within a transaction.
	PhotoEvidenceFactory interface {
		PhotoEvidence() ports.PhotoEvidence
	}

	// IntakeUoW manages transactions for order creation.
	// Covers the company check, product ownership check and number allocation.
	IntakeUoW interface {
		TxManager
		OrderRepoFactory
		CompanyRepoFactory
		ProductRepoFactory
		NumberAllocatorFactory
	}

	// IntakeUoWFactory creates new intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// ReceivingUoW manages transactions for receiving completion.
	// Coordinates the order aggregate, product stock and the photo store.
	ReceivingUoW interface {
		TxManager
		OrderRepoFactory
		CompanyRepoFactory
		ProductRepoFactory
		PhotoEvidenceFactory
	}

	// ReceivingUoWFactory creates new receiving unit of work instances.
	ReceivingUoWFactory interface {
		Create() ReceivingUoW
	}

	// PackingUoW manages transactions for packing registration.
	// Coordinates the order aggregate, product stock, the employee claim
	// table and the packing ledger.
	PackingUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		EmployeeRepoFactory
		PackingEventRepoFactory
	}

	// PackingUoWFactory creates new packing unit of work instances.
	PackingUoWFactory interface {
		Create() PackingUoW
	}

	// CompletionUoW manages transactions for order completion and status
	// overrides. Company access is needed for post-commit notifications.
	CompletionUoW interface {
		TxManager
		OrderRepoFactory
		CompanyRepoFactory
	}

	// CompletionUoWFactory creates new completion unit of work instances.
	CompletionUoWFactory interface {
		Create() CompletionUoW
	}

	// ShipmentUoW manages transactions for the shipment auto-closer.
	// Covers expired requests, their linked orders and the owning companies.
	ShipmentUoW interface {
		TxManager
		OrderRepoFactory
		CompanyRepoFactory
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}
)
