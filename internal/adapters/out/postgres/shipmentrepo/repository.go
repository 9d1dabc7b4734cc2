// Package shipmentrepo persists shipment requests.
package shipmentrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestDTO represents one shipment request row. The delivery date is a
// plain date: the auto-closer compares it against the current day, not the
// clock.
type RequestDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;index"`
	OrderID       *uuid.UUID `gorm:"type:uuid;index"`
	WarehouseName string
	DeliveryDate  *time.Time `gorm:"type:date"`
	Status        string     `gorm:"index"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for shipment requests.
func (RequestDTO) TableName() string {
	return "shipment_requests"
}

func fromDomain(r *shipment.Request) RequestDTO {
	var orderID *uuid.UUID
	if id := r.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return RequestDTO{
		ID:            r.ID().Bytes(),
		CompanyID:     r.CompanyID().Bytes(),
		OrderID:       orderID,
		WarehouseName: r.WarehouseName(),
		DeliveryDate:  r.DeliveryDate(),
		Status:        r.Status().String(),
		CreatedAt:     r.CreatedAt(),
	}
}

func toDomain(dto RequestDTO) (*shipment.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	status, err := shipment.RequestStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreRequest(
		id,
		companyID,
		orderID,
		dto.WarehouseName,
		dto.DeliveryDate,
		status,
		dto.CreatedAt,
	)
}

// GormShipmentRepository implements ShipmentRequestRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GORM shipment request repository.
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindExpired retrieves requests whose delivery date has passed and whose
// status is not yet Shipped. Requests without a delivery date never expire.
func (r *GormShipmentRepository) FindExpired(
	ctx context.Context,
	today time.Time,
) ([]*shipment.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Where("delivery_date IS NOT NULL AND delivery_date <= ? AND status <> ?",
			today, shipment.StatusShipped.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*shipment.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// Update persists changes to an existing shipment request.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":        dto.Status,
			"delivery_date": dto.DeliveryDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment request", aggregate.ID().String())
	}

	return nil
}
