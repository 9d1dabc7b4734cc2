// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status is stored as its lifecycle name so the rows stay readable in
// ad-hoc SQL; quantity totals are denormalized from the lines.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber string `gorm:"uniqueIndex"`
	Status      string `gorm:"index"`
	Destination string
	PlannedQty  int
	ReceivedQty int
	PackedQty   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one order line row. The packed quantity column is
// the row the conditional overpack update targets.
type OrderLineDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;index"`
	Destination    string
	PlannedQty     int
	ReceivedQty    int
	PackedQty      int
	DefectQty      int
	AdjustmentQty  int
	AdjustmentNote string
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, lineFromDomain(aggregate.ID(), line))
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		CompanyID:   aggregate.CompanyID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      aggregate.Status().String(),
		Destination: aggregate.Destination(),
		PlannedQty:  aggregate.PlannedQty(),
		ReceivedQty: aggregate.ReceivedQty(),
		PackedQty:   aggregate.PackedQty(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		CompletedAt: aggregate.CompletedAt(),
		Lines:       lines,
	}
}

func lineFromDomain(orderID kernel.UUID, line *order.Line) OrderLineDTO {
	return OrderLineDTO{
		ID:             line.ID().Bytes(),
		OrderID:        orderID.Bytes(),
		ProductID:      line.ProductID().Bytes(),
		Destination:    line.Destination(),
		PlannedQty:     line.PlannedQty(),
		ReceivedQty:    line.ReceivedQty(),
		PackedQty:      line.PackedQty(),
		DefectQty:      line.DefectQty(),
		AdjustmentQty:  line.AdjustmentQty(),
		AdjustmentNote: line.AdjustmentNote(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		companyID,
		dto.OrderNumber,
		status,
		dto.Destination,
		dto.PlannedQty,
		dto.ReceivedQty,
		dto.PackedQty,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.CompletedAt,
		lines,
	)
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(
		id,
		productID,
		dto.Destination,
		dto.PlannedQty,
		dto.ReceivedQty,
		dto.PackedQty,
		dto.DefectQty,
		dto.AdjustmentQty,
		dto.AdjustmentNote,
	)
}
