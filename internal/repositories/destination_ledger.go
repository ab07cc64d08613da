package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"travelplanner/internal/models/db_models"
	"travelplanner/pkg/utils"
)

// DestinationLedger is the only writer of Destination.AvailableSlots. Both
// operations are single conditional UPDATE statements so concurrent callers
// can never drive the counter below zero or above the capacity ceiling.
type DestinationLedger interface {
	// Reserve returns utils.ErrDestinationNotFound or utils.ErrInsufficientCapacity.
	Reserve(ctx context.Context, destinationID uuid.UUID, amount int) error
	// Release returns utils.ErrDestinationNotFound or utils.ErrCapacityExceeded.
	Release(ctx context.Context, destinationID uuid.UUID, amount int) error
	AvailableSlots(ctx context.Context, destinationID uuid.UUID) (int, error)
	WithTx(tx *gorm.DB) DestinationLedger
}

type destinationLedger struct {
	db *gorm.DB
}

func NewDestinationLedger(db *gorm.DB) DestinationLedger {
	return &destinationLedger{db: db}
}

func (l *destinationLedger) WithTx(tx *gorm.DB) DestinationLedger {
	return &destinationLedger{db: tx}
}

func (l *destinationLedger) Reserve(ctx context.Context, destinationID uuid.UUID, amount int) error {
	if amount <= 0 {
		return utils.ErrInvalidInput
	}

	result := l.db.WithContext(ctx).
		Model(&db_models.Destination{}).
		Where("id = ? AND available_slots >= ?", destinationID, amount).
		UpdateColumn("available_slots", gorm.Expr("available_slots - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	exists, err := l.exists(ctx, destinationID)
	if err != nil {
		return err
	}
	if !exists {
		return utils.ErrDestinationNotFound
	}
	return utils.ErrInsufficientCapacity
}

func (l *destinationLedger) Release(ctx context.Context, destinationID uuid.UUID, amount int) error {
	if amount <= 0 {
		return utils.ErrInvalidInput
	}

	result := l.db.WithContext(ctx).
		Model(&db_models.Destination{}).
		Where("id = ? AND (capacity IS NULL OR available_slots + ? <= capacity)", destinationID, amount).
		UpdateColumn("available_slots", gorm.Expr("available_slots + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	exists, err := l.exists(ctx, destinationID)
	if err != nil {
		return err
	}
	if !exists {
		return utils.ErrDestinationNotFound
	}
	return utils.ErrCapacityExceeded
}

func (l *destinationLedger) AvailableSlots(ctx context.Context, destinationID uuid.UUID) (int, error) {
	var slots []int
	err := l.db.WithContext(ctx).
		Model(&db_models.Destination{}).
		Where("id = ?", destinationID).
		Pluck("available_slots", &slots).Error
	if err != nil {
		return 0, err
	}
	if len(slots) == 0 {
		return 0, utils.ErrDestinationNotFound
	}
	return slots[0], nil
}

func (l *destinationLedger) exists(ctx context.Context, destinationID uuid.UUID) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&db_models.Destination{}).
		Where("id = ?", destinationID).
		Count(&count).Error
	return count > 0, err
}
