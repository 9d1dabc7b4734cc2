package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order row and all of its line rows. Reserved for the
// receiving flow, whose one-time status flip guarantees a single writer;
// packing flows must not rewrite line rows wholesale.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := r.updateOrderRow(ctx, aggregate); err != nil {
		return err
	}

	for _, line := range aggregate.Lines() {
		dto := lineFromDomain(aggregate.ID(), line)
		result := r.db.WithContext(ctx).
			Model(&OrderLineDTO{}).
			Where("id = ?", dto.ID).
			Updates(map[string]any{
				"received_qty":    dto.ReceivedQty,
				"packed_qty":      dto.PackedQty,
				"defect_qty":      dto.DefectQty,
				"adjustment_qty":  dto.AdjustmentQty,
				"adjustment_note": dto.AdjustmentNote,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateHeader saves the order lifecycle fields only, leaving line rows and
// the header counters untouched. The counters change through Update during
// receiving and through RecalculatePackedTotal during packing.
func (r *GormOrderRepository) UpdateHeader(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"updated_at":   dto.UpdatedAt,
			"completed_at": dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) updateOrderRow(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"received_qty": dto.ReceivedQty,
			"packed_qty":   dto.PackedQty,
			"updated_at":   dto.UpdatedAt,
			"completed_at": dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// TransitionStatus flips the status as one conditional update. A zero
// affected-row count means the order was not in the expected source status
// (or does not exist) and the caller lost the transition race.
func (r *GormOrderRepository) TransitionStatus(
	ctx context.Context,
	id kernel.UUID,
	from, to order.Status,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), from.String()).
		Updates(map[string]any{
			"status":     to.String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// IncrementLinePacked adds quantity to the line's packed total with the
// overpack guard folded into the same statement. The check and the write
// being one UPDATE is what makes two concurrent packs against the same
// remainder resolve to exactly one winner.
func (r *GormOrderRepository) IncrementLinePacked(
	ctx context.Context,
	lineID kernel.UUID,
	quantity int,
) (bool, error) {
	if err := lineID.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderLineDTO{}).
		Where("id = ? AND packed_qty + ? <= received_qty - defect_qty", lineID.Bytes(), quantity).
		Update("packed_qty", gorm.Expr("packed_qty + ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// RecalculatePackedTotal rewrites the header packed total as the sum of the
// line rows and derives the status from that sum against the effective plan,
// all in one statement. A pack worker therefore never publishes a header
// total computed from its own stale snapshot; the orders row lock serializes
// concurrent workers and the last one writes the sum that includes them all.
// Returns the recomputed total.
func (r *GormOrderRepository) RecalculatePackedTotal(
	ctx context.Context,
	id kernel.UUID,
	effectivePlan int,
	now time.Time,
) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	row := r.db.WithContext(ctx).Raw(`
		UPDATE orders
		SET packed_qty = totals.packed,
		    status = CASE WHEN totals.packed >= ? THEN ? ELSE ? END,
		    updated_at = ?
		FROM (
			SELECT COALESCE(SUM(packed_qty), 0) AS packed
			FROM order_lines
			WHERE order_id = ?
		) AS totals
		WHERE orders.id = ? AND orders.status IN ?
		RETURNING orders.packed_qty
	`, effectivePlan, order.ReadyToShip.String(), order.Packing.String(), now,
		id.Bytes(), id.Bytes(),
		[]string{order.Received.String(), order.Packing.String(), order.ReadyToShip.String()},
	).Row()

	var total int
	if err := row.Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The order left the packable statuses under a concurrent writer.
			return 0, errs.NewConflictError("order status", order.Completed.String())
		}
		return 0, err
	}

	return total, nil
}

// GetLine retrieves a single order line by ID.
func (r *GormOrderRepository) GetLine(ctx context.Context, lineID kernel.UUID) (*order.Line, error) {
	if err := lineID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderLineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", lineID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order line", lineID.String())
		}
		return nil, err
	}

	return lineToDomain(dto)
}

// CompleteByIDs bulk-completes the given orders unless already completed
// and returns the IDs actually transitioned.
func (r *GormOrderRepository) CompleteByIDs(
	ctx context.Context,
	ids []kernel.UUID,
	completedAt time.Time,
) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		UPDATE orders
		SET status = ?, completed_at = ?, updated_at = ?
		WHERE id IN ? AND status <> ?
		RETURNING id
	`, order.Completed.String(), completedAt, completedAt, raw, order.Completed.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make([]kernel.UUID, 0, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}

		completedID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		completed = append(completed, completedID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return completed, nil
}
