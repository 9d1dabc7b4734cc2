// Package product provides the Product aggregate: the per-product stock and
// defect counters mutated by the receiving and packing workflow, plus the
// identity fields used for barcode lookups.
package product

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct or RestoreProduct factory functions.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// Product holds a company's product with its warehouse stock counters.
// Receiving adds net accepted quantity to stock and defects to the defect
// counter; packing subtracts from stock. Both counters are floored at zero.
type Product struct {
	id             kernel.UUID
	companyID      kernel.UUID
	name           string
	barcode        string
	stockQuantity  int
	defectQuantity int
	createdAt      time.Time

	isConstructed bool
}

// NewProduct creates a product for a company with zero stock counters.
func NewProduct(id, companyID kernel.UUID, name, barcode string, now time.Time) (*Product, error) {
	p := &Product{
		barcode:       barcode,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCompanyID(companyID),
		p.setName(name),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(
	id, companyID kernel.UUID,
	name, barcode string,
	stockQuantity, defectQuantity int,
	createdAt time.Time,
) (*Product, error) {
	p, err := NewProduct(id, companyID, name, barcode, createdAt)
	if err != nil {
		return nil, err
	}

	p.stockQuantity = stockQuantity
	p.defectQuantity = defectQuantity
	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// CompanyID returns the owning company's identifier.
func (p *Product) CompanyID() kernel.UUID {
	return p.companyID
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Barcode returns the product barcode, empty if none is assigned.
func (p *Product) Barcode() string {
	return p.barcode
}

// StockQuantity returns the usable stock counter.
func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

// DefectQuantity returns the defect counter.
func (p *Product) DefectQuantity() int {
	return p.defectQuantity
}

// CreatedAt returns the creation timestamp.
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// AdjustStock applies deltas to the stock and defect counters, flooring
// both at zero. Positive deltas come from receiving, negative stock deltas
// from packing.
func (p *Product) AdjustStock(stockDelta, defectDelta int) {
	p.stockQuantity += stockDelta
	if p.stockQuantity < 0 {
		p.stockQuantity = 0
	}
	p.defectQuantity += defectDelta
	if p.defectQuantity < 0 {
		p.defectQuantity = 0
	}
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	p.companyID = companyID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}
