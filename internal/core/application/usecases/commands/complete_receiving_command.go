package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCompleteReceivingCommandIsNotConstructed = errors.New(
		"CompleteReceivingCommand must be created via NewCompleteReceivingCommand constructor",
	)
	ErrReceivingUpdatesAreRequired = errors.New("at least one receiving update is required")
)

// CompleteReceivingCommand represents a request to register the physical
// receiving counts for an order and transition it to Received.
type CompleteReceivingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	updates []order.ReceivingUpdate

	guard guard.ConstructorGuard
}

// NewCompleteReceivingCommand creates a command to complete receiving for an
// order. Validates the order ID and that at least one line update is present;
// quantity invariants are enforced by the order aggregate.
func NewCompleteReceivingCommand(
	orderID kernel.UUID,
	updates []order.ReceivingUpdate,
) (CompleteReceivingCommand, error) {
	cmd := CompleteReceivingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUpdates(updates),
	); err != nil {
		return CompleteReceivingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteReceivingCommandIsNotConstructed if validation fails.
func (c CompleteReceivingCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReceivingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being received.
func (c CompleteReceivingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Updates returns the per-line receiving counts.
func (c CompleteReceivingCommand) Updates() []order.ReceivingUpdate {
	return c.updates
}

func (c *CompleteReceivingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteReceivingCommand) setUpdates(updates []order.ReceivingUpdate) error {
	if len(updates) == 0 {
		return ErrReceivingUpdatesAreRequired
	}

	for _, update := range updates {
		if err := update.LineID.Validate(); err != nil {
			return err
		}
	}

	c.updates = updates
	return nil
}
