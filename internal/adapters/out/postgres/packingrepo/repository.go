// Package packingrepo persists the append-only packing event ledger.
package packingrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/packing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventDTO represents one packing ledger row. Rows are only ever inserted;
// corrections happen by adding compensating events, never by editing.
type EventDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	OrderLineID      uuid.UUID `gorm:"type:uuid;index"`
	ProductID        uuid.UUID `gorm:"type:uuid"`
	EmployeeID       uuid.UUID `gorm:"type:uuid;index"`
	Quantity         int
	PalletNumber     *int
	BoxNumber        *int
	Warehouse        string
	BoxBarcode       string
	MaterialsUsed    string
	TimeSpentMinutes *int
	CreatedAt        time.Time
}

// TableName specifies the database table name for packing events.
func (EventDTO) TableName() string {
	return "packing_events"
}

func fromDomain(event *packing.Event) EventDTO {
	meta := event.Meta()
	return EventDTO{
		ID:               event.ID().Bytes(),
		OrderID:          event.OrderID().Bytes(),
		OrderLineID:      event.OrderLineID().Bytes(),
		ProductID:        event.ProductID().Bytes(),
		EmployeeID:       event.EmployeeID().Bytes(),
		Quantity:         event.Quantity(),
		PalletNumber:     meta.PalletNumber,
		BoxNumber:        meta.BoxNumber,
		Warehouse:        meta.Warehouse,
		BoxBarcode:       meta.BoxBarcode,
		MaterialsUsed:    meta.MaterialsUsed,
		TimeSpentMinutes: meta.TimeSpentMinutes,
		CreatedAt:        event.CreatedAt(),
	}
}

// GormPackingEventRepository implements PackingEventRepository using GORM.
type GormPackingEventRepository struct {
	db *gorm.DB
}

// NewGormPackingEventRepository creates a new GORM packing event repository.
func NewGormPackingEventRepository(db *gorm.DB) *GormPackingEventRepository {
	return &GormPackingEventRepository{db: db}
}

// Add appends a packing event to the ledger.
func (r *GormPackingEventRepository) Add(ctx context.Context, event *packing.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}
