package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"travelplanner/internal/models/db_models"
)

type BookingRepository interface {
	InsertTx(ctx context.Context, booking *db_models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Booking, error)
	// DeleteByID reports false when the row was already gone.
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Booking, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]db_models.Booking, error)
	WithTx(tx *gorm.DB) BookingRepository
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) WithTx(tx *gorm.DB) BookingRepository {
	return &bookingRepository{db: tx}
}

func (r *bookingRepository) InsertTx(ctx context.Context, booking *db_models.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Booking, error) {
	var booking db_models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&db_models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Booking, error) {
	var bookings []db_models.Booking
	err := r.db.WithContext(ctx).
		Preload("Destination").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]db_models.Booking, error) {
	var bookings []db_models.Booking
	err := r.db.WithContext(ctx).
		Where("destination_id = ?", destinationID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
