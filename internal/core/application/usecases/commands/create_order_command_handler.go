package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// Allocates the daily order number and persists the order with its lines in
// Receiving-Pending status, all inside a single transaction.
type CreateOrderCommandHandler struct {
	uowFactory IntakeUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
// Requires an IntakeUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory IntakeUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order.
// The number allocation locks the day's counter row, so the whole intake is
// serialized per calendar date and a rollback releases the number.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CompanyRepository().Get(ctx, cmd.CompanyID()); err != nil {
		return nil, err
	}

	owned, err := uow.ProductRepository().BelongToCompany(ctx, cmd.CompanyID(), cmd.ProductIDs())
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errs.NewValueIsInvalidError("lines: products must belong to the company")
	}

	now := time.Now().UTC()
	sequence, err := uow.OrderNumberAllocator().Allocate(ctx, now)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(cmd.Lines()))
	for _, spec := range cmd.Lines() {
		line, err := order.NewLine(kernel.NewUUID(), spec.ProductID, spec.Destination, spec.PlannedQty)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CompanyID(),
		order.FormatNumber(now, sequence),
		cmd.Destination(),
		lines,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
