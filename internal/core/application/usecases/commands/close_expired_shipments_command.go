package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrCloseExpiredShipmentsCommandIsNotConstructed = errors.New(
	"CloseExpiredShipmentsCommand must be created via NewCloseExpiredShipmentsCommand constructor",
)

// CloseExpiredShipmentsCommand triggers one sweep over shipment requests
// whose delivery date has passed. The sweep marks them Shipped and closes
// their linked orders; the scheduler runs it on a fixed interval.
type CloseExpiredShipmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewCloseExpiredShipmentsCommand creates a command to run one auto-close
// sweep. This is a parameterless command that processes all expired requests.
func NewCloseExpiredShipmentsCommand() CloseExpiredShipmentsCommand {
	command := CloseExpiredShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrCloseExpiredShipmentsCommandIsNotConstructed if validation fails.
func (c *CloseExpiredShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrCloseExpiredShipmentsCommandIsNotConstructed)
}
