package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"travelplanner/internal/models/db_models"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *db_models.Review) error
	ExistsForUser(ctx context.Context, userID, destinationID uuid.UUID) (bool, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]db_models.Review, error)
	AverageRating(ctx context.Context, destinationID uuid.UUID) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateReview surfaces a duplicate (user, destination) pair as gorm.ErrDuplicatedKey.
func (r *reviewRepository) CreateReview(ctx context.Context, review *db_models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ExistsForUser(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Review{}).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]db_models.Review, error) {
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).
		Where("destination_id = ?", destinationID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) AverageRating(ctx context.Context, destinationID uuid.UUID) (float64, error) {
	var avg struct {
		Value *float64
	}
	err := r.db.WithContext(ctx).
		Model(&db_models.Review{}).
		Select("AVG(rating) AS value").
		Where("destination_id = ?", destinationID).
		Scan(&avg).Error
	if err != nil || avg.Value == nil {
		return 0, err
	}
	return *avg.Value, nil
}
