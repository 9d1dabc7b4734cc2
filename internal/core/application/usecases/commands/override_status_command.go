package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrOverrideStatusCommandIsNotConstructed = errors.New(
	"OverrideStatusCommand must be created via NewOverrideStatusCommand constructor",
)

// OverrideStatusCommand represents an operator correction that forces an
// order into a specific status. It bypasses the lifecycle derivation and
// never re-runs receiving stock effects; it exists to repair bad data, not
// as part of the regular workflow.
type OverrideStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewOverrideStatusCommand creates a command to force an order status.
func NewOverrideStatusCommand(orderID kernel.UUID, status order.Status) (OverrideStatusCommand, error) {
	cmd := OverrideStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return OverrideStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrOverrideStatusCommandIsNotConstructed if validation fails.
func (c OverrideStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to correct.
func (c OverrideStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the status the order is forced into.
func (c OverrideStatusCommand) Status() order.Status {
	return c.status
}

func (c *OverrideStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *OverrideStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
