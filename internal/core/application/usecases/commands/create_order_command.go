package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired    = errors.New("at least one order line is required")
	ErrPlannedQtyIsInvalid = errors.New("planned quantity must be greater than 0")
)

// LineSpec describes one requested order line: which product is expected,
// where it ships to and how many units the company plans to send.
type LineSpec struct {
	ProductID   kernel.UUID
	Destination string
	PlannedQty  int
}

// CreateOrderCommand represents a request to register a new supply order
// for a company, with its full set of lines.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	companyID   kernel.UUID
	destination string
	lines       []LineSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new supply order.
// Validates that the company ID is valid, at least one line is present and
// every line references a valid product with a positive planned quantity.
// Duplicate (product, destination) pairs are rejected by the aggregate.
func NewCreateOrderCommand(
	companyID kernel.UUID,
	destination string,
	lines []LineSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCompanyID(companyID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.destination = destination
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CompanyID returns the identifier of the company the order belongs to.
func (c CreateOrderCommand) CompanyID() kernel.UUID {
	return c.companyID
}

// Destination returns the order-level shipping destination.
func (c CreateOrderCommand) Destination() string {
	return c.destination
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []LineSpec {
	return c.lines
}

// ProductIDs returns the identifiers of all referenced products.
func (c CreateOrderCommand) ProductIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, line := range c.lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

func (c *CreateOrderCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	c.companyID = companyID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []LineSpec) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.PlannedQty <= 0 {
			return ErrPlannedQtyIsInvalid
		}
	}

	c.lines = lines
	return nil
}
