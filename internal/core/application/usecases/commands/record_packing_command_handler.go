package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RecordPackingCommandHandler handles packing registration. Resolves the
// employee claim, guards the line remainder with an atomic conditional
// increment and appends the packing event to the ledger.
type RecordPackingCommandHandler struct {
	uowFactory     PackingUoWFactory
	packingService services.PackingService
}

// NewRecordPackingCommandHandler creates a handler for packing operations.
func NewRecordPackingCommandHandler(
	uowFactory PackingUoWFactory,
	packingService services.PackingService,
) RecordPackingCommandHandler {
	return RecordPackingCommandHandler{
		uowFactory:     uowFactory,
		packingService: packingService,
	}
}

// Handle processes the packing command and returns the created event.
// The overpack check runs as a single conditional update on the line row,
// so of two concurrent calls competing for the same remainder exactly one
// succeeds; the loser gets a ConflictError carrying the fresh remainder.
func (h *RecordPackingCommandHandler) Handle(
	ctx context.Context,
	cmd RecordPackingCommand,
) (*packing.Event, error) {
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

	emp, err := h.resolveEmployee(ctx, uow.EmployeeRepository(), cmd.UserID(), cmd.EmployeeCode())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	prod, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	// Check status and line membership before touching the line row: the
	// increment is keyed by line ID alone and must never hit a line that
	// does not belong to this order and product.
	if err = aggregate.Status().ValidatePack(); err != nil {
		return nil, err
	}
	if _, err = aggregate.LineForPacking(cmd.LineID(), cmd.ProductID()); err != nil {
		return nil, err
	}

	accepted, err := orderRepo.IncrementLinePacked(ctx, cmd.LineID(), cmd.Quantity())
	if err != nil {
		return nil, err
	}
	if !accepted {
		fresh, lineErr := orderRepo.GetLine(ctx, cmd.LineID())
		if lineErr != nil {
			return nil, lineErr
		}
		return nil, errs.NewConflictError("packing remainder", fresh.PackingRemainder())
	}

	now := time.Now().UTC()
	event, err := h.packingService.Record(
		aggregate, cmd.LineID(), prod, emp, cmd.Quantity(), cmd.Meta(), now,
	)
	if err != nil {
		return nil, err
	}

	// The line row is already updated by the conditional increment. The
	// header total and status are recomputed from the line rows in SQL
	// rather than written from this snapshot, which a concurrent pack may
	// have outdated; the in-memory aggregate only feeds the event above.
	if _, err = orderRepo.RecalculatePackedTotal(
		ctx, aggregate.ID(), aggregate.EffectivePlan(), now,
	); err != nil {
		return nil, err
	}

	if err = uow.ProductRepository().AdjustStock(ctx, prod.ID(), -cmd.Quantity(), 0); err != nil {
		return nil, err
	}

	if err = uow.PackingEventRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return event, nil
}

// resolveEmployee maps the employee code to a claim. An unknown code is
// claimed by the calling user on first use; a user who already owns a
// different code gets a ConflictError reporting the code they own, which
// blocks packing under an arbitrary identity.
func (h *RecordPackingCommandHandler) resolveEmployee(
	ctx context.Context,
	repo ports.EmployeeRepository,
	userID kernel.UUID,
	code string,
) (*employee.Employee, error) {
	emp, err := repo.GetByCode(ctx, code)
	if err == nil {
		return emp, nil
	}

	var notFound *errs.ObjectNotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	owned, err := repo.GetByUser(ctx, userID)
	if err == nil {
		return nil, errs.NewConflictError("employee code", owned.Code())
	}
	if !errors.As(err, &notFound) {
		return nil, err
	}

	emp, err = employee.NewEmployee(kernel.NewUUID(), userID, code)
	if err != nil {
		return nil, err
	}

	// The unique constraints on code and user turn a lost first-claim race
	// into a ConflictError from the insert.
	if err = repo.Add(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}
