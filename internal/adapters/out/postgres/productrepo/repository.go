package productrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// BelongToCompany reports whether every given product exists and is owned by
// the company. Implemented as one count query over distinct IDs.
func (r *GormProductRepository) BelongToCompany(
	ctx context.Context,
	companyID kernel.UUID,
	productIDs []kernel.UUID,
) (bool, error) {
	if err := companyID.Validate(); err != nil {
		return false, err
	}
	if len(productIDs) == 0 {
		return true, nil
	}

	distinct := make(map[uuid.UUID]struct{}, len(productIDs))
	raw := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return false, err
		}
		if _, seen := distinct[id.Bytes()]; seen {
			continue
		}
		distinct[id.Bytes()] = struct{}{}
		raw = append(raw, id.Bytes())
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("company_id = ? AND id IN ?", companyID.Bytes(), raw).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count == int64(len(raw)), nil
}

// AdjustStock applies stock and defect deltas as one atomic update, flooring
// both counters at zero the same way the aggregate does in memory.
func (r *GormProductRepository) AdjustStock(
	ctx context.Context,
	productID kernel.UUID,
	stockDelta, defectDelta int,
) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", productID.Bytes()).
		Updates(map[string]any{
			"stock_quantity":  gorm.Expr("GREATEST(stock_quantity + ?, 0)", stockDelta),
			"defect_quantity": gorm.Expr("GREATEST(defect_quantity + ?, 0)", defectDelta),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}

	return nil
}
