// Package counterrepo allocates daily order sequence numbers.
package counterrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyCounterDTO holds one counter row per calendar date. The value column
// stores the last allocated sequence number for that day.
type DailyCounterDTO struct {
	Date  time.Time `gorm:"type:date;primaryKey"`
	Value int
}

// TableName specifies the database table name for daily counters.
func (DailyCounterDTO) TableName() string {
	return "daily_counters"
}

// GormNumberAllocator implements OrderNumberAllocator using GORM.
// It must run on a transaction-bound connection: the row lock it takes is
// held until that transaction commits or rolls back, which is exactly what
// keeps concurrent intakes from allocating the same number and lets an
// aborted intake return its number.
type GormNumberAllocator struct {
	db *gorm.DB
}

// NewGormNumberAllocator creates an allocator bound to the given connection.
func NewGormNumberAllocator(db *gorm.DB) *GormNumberAllocator {
	return &GormNumberAllocator{db: db}
}

// Allocate locks the date's counter row, increments it and returns the new
// value. The counter row is created at zero on the date's first order.
func (a *GormNumberAllocator) Allocate(ctx context.Context, date time.Time) (int, error) {
	day := date.Truncate(24 * time.Hour)

	var dto DailyCounterDTO
	err := a.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "date = ?", day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		dto = DailyCounterDTO{Date: day, Value: 0}
		// Two first-of-the-day intakes can both miss the row; the insert
		// conflict makes the loser wait for the winner's lock instead.
		createErr := a.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto).Error
		if createErr != nil {
			return 0, createErr
		}

		err = a.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&dto, "date = ?", day).Error
	}
	if err != nil {
		return 0, err
	}

	dto.Value++
	err = a.db.WithContext(ctx).
		Model(&DailyCounterDTO{}).
		Where("date = ?", day).
		Update("value", dto.Value).Error
	if err != nil {
		return 0, err
	}

	return dto.Value, nil
}
