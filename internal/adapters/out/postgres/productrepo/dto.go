// Package productrepo persists products and their stock counters.
package productrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting products.
// The stock and defect counters are only ever touched through atomic
// expression updates, never read-modify-write.
type ProductDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;index"`
	Name           string
	Barcode        string `gorm:"uniqueIndex"`
	StockQuantity  int
	DefectQuantity int
	CreatedAt      time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:             p.ID().Bytes(),
		CompanyID:      p.CompanyID().Bytes(),
		Name:           p.Name(),
		Barcode:        p.Barcode(),
		StockQuantity:  p.StockQuantity(),
		DefectQuantity: p.DefectQuantity(),
		CreatedAt:      p.CreatedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		companyID,
		dto.Name,
		dto.Barcode,
		dto.StockQuantity,
		dto.DefectQuantity,
		dto.CreatedAt,
	)
}
