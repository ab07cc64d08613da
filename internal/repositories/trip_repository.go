package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"travelplanner/internal/models/db_models"
)

type TripRepository interface {
	InsertTx(ctx context.Context, trip *db_models.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Trip, error)
	// HasOverlap reports whether the user already has a trip intersecting
	// the closed interval [start, end].
	HasOverlap(ctx context.Context, userID uuid.UUID, start, end time.Time) (bool, error)
	WithTx(tx *gorm.DB) TripRepository
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) WithTx(tx *gorm.DB) TripRepository {
	return &tripRepository{db: tx}
}

func (r *tripRepository) InsertTx(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Omit("Routes").Create(trip).Error
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date ASC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) HasOverlap(ctx context.Context, userID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, end, start).
		Count(&count).Error
	return count > 0, err
}
