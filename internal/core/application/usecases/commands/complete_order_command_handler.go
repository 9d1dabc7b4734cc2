package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"
)

// CompleteOrderCommandHandler handles explicit order completion. Only orders
// in Ready-to-Ship status can be completed; the completion timestamp is set
// once and never changes afterwards.
type CompleteOrderCommandHandler struct {
	uowFactory CompletionUoWFactory
	notifier   ports.Notifier
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
// The notifier is invoked after commit and is best effort.
func NewCompleteOrderCommandHandler(
	uowFactory CompletionUoWFactory,
	notifier ports.Notifier,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the completion command.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	if err = aggregate.Complete(time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateHeader(ctx, aggregate); err != nil {
		return err
	}

	owner, err := uow.CompanyRepository().Get(ctx, aggregate.CompanyID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if chatID := owner.NotifyChatID(); chatID != "" {
		text := fmt.Sprintf(
			"Order %s is completed: %d packed",
			aggregate.OrderNumber(), aggregate.PackedQty(),
		)
		h.notifier.Notify(ctx, chatID, text)
	}

	return nil
}
