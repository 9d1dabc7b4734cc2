package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CompleteReceivingCommandHandler handles the one-time receiving transition.
// Applies the physical counts to every line, moves the received goods into
// product stock and flips the order to Received. The flip is enforced with a
// conditional status update so two concurrent calls can never both succeed.
type CompleteReceivingCommandHandler struct {
	uowFactory ReceivingUoWFactory
	notifier   ports.Notifier
}

// NewCompleteReceivingCommandHandler creates a handler for receiving
// completion. The notifier is invoked after commit and is best effort.
func NewCompleteReceivingCommandHandler(
	uowFactory ReceivingUoWFactory,
	notifier ports.Notifier,
) CompleteReceivingCommandHandler {
	return CompleteReceivingCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the receiving completion command. All line updates are
// applied atomically: any invalid quantity or missing defect photo aborts
// the whole call with nothing persisted.
func (h *CompleteReceivingCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteReceivingCommand,
) (order.ReceivingResult, error) {
	if err := cmd.Validate(); err != nil {
		return order.ReceivingResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.ReceivingResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.ReceivingResult{}, err
	}

	result, err := aggregate.CompleteReceiving(cmd.Updates(), time.Now().UTC())
	if err != nil {
		return order.ReceivingResult{}, err
	}

	if err = h.checkDefectPhotos(ctx, uow, aggregate, cmd.Updates()); err != nil {
		return order.ReceivingResult{}, err
	}

	// The in-memory transition above only guards this process. The
	// conditional update is the cross-process guard: zero affected rows
	// means a concurrent call already completed receiving.
	flipped, err := orderRepo.TransitionStatus(ctx, aggregate.ID(), order.ReceivingPending, order.Received)
	if err != nil {
		return order.ReceivingResult{}, err
	}
	if !flipped {
		return order.ReceivingResult{}, errs.NewConflictError("order status", order.Received.String())
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return order.ReceivingResult{}, err
	}

	productRepo := uow.ProductRepository()
	for _, update := range cmd.Updates() {
		line, lineErr := aggregate.LineByID(update.LineID)
		if lineErr != nil {
			return order.ReceivingResult{}, lineErr
		}

		if err = productRepo.AdjustStock(ctx, line.ProductID(), line.NetReceived(), line.DefectQty()); err != nil {
			return order.ReceivingResult{}, err
		}
	}

	owner, err := uow.CompanyRepository().Get(ctx, aggregate.CompanyID())
	if err != nil {
		return order.ReceivingResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.ReceivingResult{}, err
	}

	if chatID := owner.NotifyChatID(); chatID != "" {
		text := fmt.Sprintf(
			"Receiving for order %s is complete: %d received, %d defect",
			aggregate.OrderNumber(), result.ReceivedTotal, result.DefectTotal,
		)
		h.notifier.Notify(ctx, chatID, text)
	}

	return result, nil
}

// checkDefectPhotos enforces the evidence rule: every line that reports
// defects must have at least one defect photo on file for its product.
// Photo store failures surface as validation errors because the rule gates
// a stock-affecting invariant.
func (h *CompleteReceivingCommandHandler) checkDefectPhotos(
	ctx context.Context,
	uow ReceivingUoW,
	aggregate *order.Order,
	updates []order.ReceivingUpdate,
) error {
	for _, update := range updates {
		if update.DefectQty == 0 {
			continue
		}

		line, err := aggregate.LineByID(update.LineID)
		if err != nil {
			return err
		}

		count, err := uow.PhotoEvidence().CountDefectPhotos(ctx, aggregate.ID(), line.ProductID())
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("defect photo evidence", err)
		}
		if count == 0 {
			return errs.NewValueIsInvalidError("defect requires photo evidence")
		}
	}

	return nil
}
