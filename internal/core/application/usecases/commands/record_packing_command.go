package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecordPackingCommandIsNotConstructed = errors.New(
		"RecordPackingCommand must be created via NewRecordPackingCommand constructor",
	)
	ErrEmployeeCodeIsRequired = errors.New("employee code is required")
	ErrQuantityIsInvalid      = errors.New("quantity must be greater than 0")
)

// RecordPackingCommand represents a request to register packed units against
// one order line, attributed to the warehouse employee identified by code.
type RecordPackingCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	lineID       kernel.UUID
	productID    kernel.UUID
	userID       kernel.UUID
	employeeCode string
	quantity     int
	meta         packing.Meta

	guard guard.ConstructorGuard
}

// NewRecordPackingCommand creates a command to register a packing event.
// The user ID identifies the calling account; it is bound to the employee
// code on first use.
func NewRecordPackingCommand(
	orderID, lineID, productID, userID kernel.UUID,
	employeeCode string,
	quantity int,
	meta packing.Meta,
) (RecordPackingCommand, error) {
	cmd := RecordPackingCommand{
		meta:  meta,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineID(lineID),
		cmd.setProductID(productID),
		cmd.setUserID(userID),
		cmd.setEmployeeCode(employeeCode),
		cmd.setQuantity(quantity),
	); err != nil {
		return RecordPackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordPackingCommandIsNotConstructed if validation fails.
func (c RecordPackingCommand) Validate() error {
	return c.guard.Validate(ErrRecordPackingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being packed.
func (c RecordPackingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineID returns the identifier of the order line being packed.
func (c RecordPackingCommand) LineID() kernel.UUID {
	return c.lineID
}

// ProductID returns the identifier of the product being packed.
func (c RecordPackingCommand) ProductID() kernel.UUID {
	return c.productID
}

// UserID returns the identifier of the calling user account.
func (c RecordPackingCommand) UserID() kernel.UUID {
	return c.userID
}

// EmployeeCode returns the warehouse employee code.
func (c RecordPackingCommand) EmployeeCode() string {
	return c.employeeCode
}

// Quantity returns the number of packed units.
func (c RecordPackingCommand) Quantity() int {
	return c.quantity
}

// Meta returns optional packing details for the audit ledger.
func (c RecordPackingCommand) Meta() packing.Meta {
	return c.meta
}

func (c *RecordPackingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordPackingCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *RecordPackingCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *RecordPackingCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *RecordPackingCommand) setEmployeeCode(employeeCode string) error {
	employeeCode = strings.TrimSpace(employeeCode)
	if employeeCode == "" {
		return ErrEmployeeCodeIsRequired
	}

	c.employeeCode = employeeCode
	return nil
}

func (c *RecordPackingCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
