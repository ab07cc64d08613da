package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"travelplanner/internal/models/db_models"
)

type AttractionRepository interface {
	CreateTx(ctx context.Context, attraction *db_models.Attraction) error
	UpdateTx(ctx context.Context, attraction *db_models.Attraction) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Attraction, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Attraction, error)
	FindByDestinationAndName(ctx context.Context, destinationID uuid.UUID, name string) (*db_models.Attraction, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]db_models.Attraction, error)
	Search(ctx context.Context, criteria ...Criterion) ([]db_models.Attraction, error)
	ListTypes(ctx context.Context) ([]string, error)
	WithTx(tx *gorm.DB) AttractionRepository
}

type attractionRepository struct {
	db *gorm.DB
}

func NewAttractionRepository(db *gorm.DB) AttractionRepository {
	return &attractionRepository{db: db}
}

func (r *attractionRepository) WithTx(tx *gorm.DB) AttractionRepository {
	return &attractionRepository{db: tx}
}

func (r *attractionRepository) CreateTx(ctx context.Context, attraction *db_models.Attraction) error {
	return r.db.WithContext(ctx).Create(attraction).Error
}

func (r *attractionRepository) UpdateTx(ctx context.Context, attraction *db_models.Attraction) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Attraction{}).
		Where("id = ?", attraction.ID).
		Updates(map[string]interface{}{
			"type":              attraction.Type,
			"description":       attraction.Description,
			"latitude":          attraction.Latitude,
			"longitude":         attraction.Longitude,
			"approximate_price": attraction.ApproximatePrice,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Read helpers return (nil, nil) when nothing matches.

func (r *attractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Attraction, error) {
	var attraction db_models.Attraction
	err := r.db.WithContext(ctx).First(&attraction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attraction, nil
}

func (r *attractionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Attraction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var attractions []db_models.Attraction
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&attractions).Error
	if err != nil {
		return nil, err
	}
	return attractions, nil
}

func (r *attractionRepository) FindByDestinationAndName(ctx context.Context, destinationID uuid.UUID, name string) (*db_models.Attraction, error) {
	var attraction db_models.Attraction
	err := r.db.WithContext(ctx).
		Where("destination_id = ? AND LOWER(name) = LOWER(?)", destinationID, name).
		First(&attraction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attraction, nil
}

func (r *attractionRepository) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]db_models.Attraction, error) {
	return r.Search(ctx, Equals{Column: "destination_id", Value: destinationID})
}

func (r *attractionRepository) Search(ctx context.Context, criteria ...Criterion) ([]db_models.Attraction, error) {
	var attractions []db_models.Attraction
	err := ApplyCriteria(r.db.WithContext(ctx).Model(&db_models.Attraction{}), criteria...).
		Order("name ASC").
		Find(&attractions).Error
	if err != nil {
		return nil, err
	}
	return attractions, nil
}

func (r *attractionRepository) ListTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).
		Model(&db_models.Attraction{}).
		Where("type <> ''").
		Distinct("type").
		Order("type ASC").
		Pluck("type", &types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}
