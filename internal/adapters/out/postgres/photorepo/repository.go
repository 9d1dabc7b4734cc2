// Package photorepo reads the photo evidence attached to orders.
package photorepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// photoTypeDefect marks photos taken of defective goods. Receiving with
// defects is blocked until at least one such photo is on file.
const photoTypeDefect = "defect"

// OrderPhotoDTO represents one uploaded photo. Uploads happen outside this
// service; the workflow only counts them.
type OrderPhotoDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	PhotoType  string `gorm:"index"`
	StorageKey string
	CreatedAt  time.Time
}

// TableName specifies the database table name for order photos.
func (OrderPhotoDTO) TableName() string {
	return "order_photos"
}

// GormPhotoEvidenceRepository implements PhotoEvidence using GORM.
type GormPhotoEvidenceRepository struct {
	db *gorm.DB
}

// NewGormPhotoEvidenceRepository creates a new GORM photo evidence repository.
func NewGormPhotoEvidenceRepository(db *gorm.DB) *GormPhotoEvidenceRepository {
	return &GormPhotoEvidenceRepository{db: db}
}

// CountDefectPhotos returns the number of defect photos attached to the
// order for the given product.
func (r *GormPhotoEvidenceRepository) CountDefectPhotos(
	ctx context.Context,
	orderID, productID kernel.UUID,
) (int, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}
	if err := productID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderPhotoDTO{}).
		Where("order_id = ? AND product_id = ? AND photo_type = ?",
			orderID.Bytes(), productID.Bytes(), photoTypeDefect).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
