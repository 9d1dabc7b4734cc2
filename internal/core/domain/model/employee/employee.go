// Package employee provides the WarehouseEmployee claim entity. An employee
// code is claimed by a user the first time it is used in a packing call;
// ownership is an explicit relation with unique constraints on both the code
// and the user, so a user can never hold two codes and a code can never be
// held by two users.
package employee

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrEmployeeIsNotConstructed is returned when an Employee instance was not
// created through the NewEmployee or RestoreEmployee factory functions.
var ErrEmployeeIsNotConstructed = errors.New("Employee must be created via NewEmployee or RestoreEmployee")

// Employee binds a warehouse employee code to the user who claimed it.
type Employee struct {
	id     kernel.UUID
	userID kernel.UUID
	code   string

	isConstructed bool
}

// NewEmployee creates a claim of the given employee code by the given user.
// The code is trimmed and must be non-empty.
func NewEmployee(id, userID kernel.UUID, code string) (*Employee, error) {
	e := &Employee{isConstructed: true}

	if err := errors.Join(
		e.setID(id),
		e.setUserID(userID),
		e.setCode(code),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEmployee reconstructs an employee claim from persistence.
func RestoreEmployee(id, userID kernel.UUID, code string) (*Employee, error) {
	return NewEmployee(id, userID, code)
}

// Validate ensures the Employee instance was properly constructed.
func (e *Employee) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEmployeeIsNotConstructed
	}
	return nil
}

// ID returns the claim's unique identifier.
func (e *Employee) ID() kernel.UUID {
	return e.id
}

// UserID returns the user who owns the code.
func (e *Employee) UserID() kernel.UUID {
	return e.userID
}

// Code returns the claimed employee code.
func (e *Employee) Code() string {
	return e.code
}

func (e *Employee) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Employee) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	e.userID = userID
	return nil
}

func (e *Employee) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("employeeCode")
	}
	e.code = code
	return nil
}
