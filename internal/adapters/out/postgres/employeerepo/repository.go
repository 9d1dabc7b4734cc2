// Package employeerepo persists the warehouse employee claim table.
package employeerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeDTO represents one employee-code claim. The unique constraints on
// code and user carry the first-claim-wins semantics; the database, not the
// application, arbitrates concurrent claims. Requires the connection to be
// opened with TranslateError so violations surface as gorm.ErrDuplicatedKey.
type EmployeeDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Code   string    `gorm:"uniqueIndex"`
}

// TableName specifies the database table name for employee claims.
func (EmployeeDTO) TableName() string {
	return "warehouse_employees"
}

func fromDomain(e *employee.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:     e.ID().Bytes(),
		UserID: e.UserID().Bytes(),
		Code:   e.Code(),
	}
}

func toDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return employee.RestoreEmployee(id, userID, dto.Code)
}

// GormEmployeeRepository implements EmployeeRepository using GORM.
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GORM employee repository.
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// GetByCode retrieves a claim by employee code.
func (r *GormEmployeeRepository) GetByCode(ctx context.Context, code string) (*employee.Employee, error) {
	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employee code", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByUser retrieves the claim owned by the given user.
func (r *GormEmployeeRepository) GetByUser(
	ctx context.Context,
	userID kernel.UUID,
) (*employee.Employee, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employee", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add inserts a new claim. A duplicate code or user is reported as a
// ConflictError so a lost first-claim race looks the same as an explicit
// collision to the caller.
func (r *GormEmployeeRepository) Add(ctx context.Context, aggregate *employee.Employee) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("employee code", aggregate.Code(), err)
		}
		return err
	}

	return nil
}
