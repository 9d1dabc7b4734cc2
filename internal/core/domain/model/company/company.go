// Package company provides the Company entity. Companies own orders and
// products; the notify chat identifier is where order lifecycle
// notifications for the company's owner are delivered.
package company

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrCompanyIsNotConstructed is returned when a Company instance was not
// created through the NewCompany or RestoreCompany factory functions.
var ErrCompanyIsNotConstructed = errors.New("Company must be created via NewCompany or RestoreCompany")

// Company is a client company served by the warehouse.
type Company struct {
	id           kernel.UUID
	name         string
	notifyChatID string

	isConstructed bool
}

// NewCompany creates a company. The notify chat identifier may be empty,
// in which case notifications for the company are skipped.
func NewCompany(id kernel.UUID, name, notifyChatID string) (*Company, error) {
	c := &Company{
		notifyChatID:  notifyChatID,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCompany reconstructs a company from persistence.
func RestoreCompany(id kernel.UUID, name, notifyChatID string) (*Company, error) {
	return NewCompany(id, name, notifyChatID)
}

// Validate ensures the Company instance was properly constructed.
func (c *Company) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCompanyIsNotConstructed
	}
	return nil
}

// ID returns the company's unique identifier.
func (c *Company) ID() kernel.UUID {
	return c.id
}

// Name returns the company name.
func (c *Company) Name() string {
	return c.name
}

// NotifyChatID returns the chat identifier for owner notifications,
// empty if the owner has no linked chat.
func (c *Company) NotifyChatID() string {
	return c.notifyChatID
}

func (c *Company) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Company) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
