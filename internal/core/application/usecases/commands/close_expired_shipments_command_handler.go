package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// CloseExpiredShipmentsCommandHandler performs one auto-close sweep: marks
// expired shipment requests as Shipped, bulk-completes their linked orders
// and notifies the owning companies after commit.
type CloseExpiredShipmentsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	notifier   ports.Notifier
}

// NewCloseExpiredShipmentsCommandHandler creates a handler for auto-close
// sweeps. The notifier is invoked after commit and is best effort.
func NewCloseExpiredShipmentsCommandHandler(
	uowFactory ShipmentUoWFactory,
	notifier ports.Notifier,
) CloseExpiredShipmentsCommandHandler {
	return CloseExpiredShipmentsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

type shipmentNotification struct {
	chatID string
	text   string
}

// Handle runs one sweep and returns the number of requests shipped.
// Everything except the notifications happens in a single transaction, so a
// failed sweep leaves no half-closed requests behind.
func (h *CloseExpiredShipmentsCommandHandler) Handle(
	ctx context.Context,
	cmd CloseExpiredShipmentsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	requests, err := uow.ShipmentRequestRepository().FindExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	orderIDs := make([]kernel.UUID, 0, len(requests))
	for _, request := range requests {
		if err = request.MarkShipped(); err != nil {
			return 0, err
		}

		if err = uow.ShipmentRequestRepository().Update(ctx, request); err != nil {
			return 0, err
		}

		if orderID := request.OrderID(); orderID != nil {
			orderIDs = append(orderIDs, *orderID)
		}
	}

	completed, err := uow.OrderRepository().CompleteByIDs(ctx, orderIDs, now)
	if err != nil {
		return 0, err
	}

	notifications, err := h.collectNotifications(ctx, uow, completed)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, notification := range notifications {
		h.notifier.Notify(ctx, notification.chatID, notification.text)
	}

	return len(requests), nil
}

// collectNotifications reads the data the post-commit notifications need
// while the transaction is still open. Companies without a chat configured
// are skipped.
func (h *CloseExpiredShipmentsCommandHandler) collectNotifications(
	ctx context.Context,
	uow ShipmentUoW,
	completed []kernel.UUID,
) ([]shipmentNotification, error) {
	notifications := make([]shipmentNotification, 0, len(completed))
	for _, orderID := range completed {
		aggregate, err := uow.OrderRepository().Get(ctx, orderID)
		if err != nil {
			return nil, err
		}

		owner, err := uow.CompanyRepository().Get(ctx, aggregate.CompanyID())
		if err != nil {
			return nil, err
		}

		if owner.NotifyChatID() == "" {
			continue
		}

		notifications = append(notifications, shipmentNotification{
			chatID: owner.NotifyChatID(),
			text: fmt.Sprintf(
				"Order %s is completed by shipment: %d packed",
				aggregate.OrderNumber(), aggregate.PackedQty(),
			),
		})
	}

	return notifications, nil
}
