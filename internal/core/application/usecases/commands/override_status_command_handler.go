package commands

import (
	"context"
	"time"
)

// OverrideStatusCommandHandler handles operator status corrections.
type OverrideStatusCommandHandler struct {
	uowFactory CompletionUoWFactory
}

// NewOverrideStatusCommandHandler creates a handler for status overrides.
func NewOverrideStatusCommandHandler(uowFactory CompletionUoWFactory) OverrideStatusCommandHandler {
	return OverrideStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle forces the order into the requested status. No notification is
// sent: corrections are an operator concern, not a workflow event.
func (h *OverrideStatusCommandHandler) Handle(ctx context.Context, cmd OverrideStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.OverrideStatus(cmd.Status(), time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateHeader(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
