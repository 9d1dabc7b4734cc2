package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// PhotoEvidence exposes the photo store attached to orders. Receiving with
// defects requires at least one defect photo on file.
type PhotoEvidence interface {
	// CountDefectPhotos returns the number of defect photos attached to
	// the order for the given product.
	CountDefectPhotos(ctx context.Context, orderID, productID kernel.UUID) (int, error)
}

// Notifier delivers human-readable status notifications to a company chat.
// Delivery is best effort: implementations report failure through the
// returned flag and must never return an error that would fail the calling
// operation.
type Notifier interface {
	Notify(ctx context.Context, chatID string, text string) bool
}
