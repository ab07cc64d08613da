package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"travelplanner/internal/models/db_models"
)

type DestinationRepository interface {
	InsertTx(ctx context.Context, destination *db_models.Destination) error
	UpdateProfileTx(ctx context.Context, destination *db_models.Destination) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Destination, error)
	FindByName(ctx context.Context, name string) (*db_models.Destination, error)
	FindByNameForUpdate(ctx context.Context, name string) (*db_models.Destination, error)
	// ReservedSlots sums slots_reserved over the destination's bookings.
	ReservedSlots(ctx context.Context, id uuid.UUID) (int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, page, pageSize int, criteria ...Criterion) ([]db_models.Destination, error)
	WithTx(tx *gorm.DB) DestinationRepository
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) WithTx(tx *gorm.DB) DestinationRepository {
	return &destinationRepository{db: tx}
}

func (r *destinationRepository) InsertTx(ctx context.Context, destination *db_models.Destination) error {
	return r.db.WithContext(ctx).Omit("Attractions").Create(destination).Error
}

// UpdateProfileTx rewrites descriptive fields and the capacity ceiling. It
// never touches available_slots.
func (r *destinationRepository) UpdateProfileTx(ctx context.Context, destination *db_models.Destination) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Destination{}).
		Where("id = ?", destination.ID).
		Updates(map[string]interface{}{
			"name":        destination.Name,
			"country":     destination.Country,
			"climate":     destination.Climate,
			"description": destination.Description,
			"latitude":    destination.Latitude,
			"longitude":   destination.Longitude,
			"capacity":    destination.Capacity,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *destinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Destination, error) {
	var destination db_models.Destination
	err := r.db.WithContext(ctx).First(&destination, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) FindByName(ctx context.Context, name string) (*db_models.Destination, error) {
	return r.findByName(r.db.WithContext(ctx), name)
}

// FindByNameForUpdate locks the row until the surrounding transaction ends,
// so ledger updates on the same destination wait for it.
func (r *destinationRepository) FindByNameForUpdate(ctx context.Context, name string) (*db_models.Destination, error) {
	return r.findByName(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), name)
}

func (r *destinationRepository) findByName(db *gorm.DB, name string) (*db_models.Destination, error) {
	var destination db_models.Destination
	err := db.First(&destination, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Destination{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *destinationRepository) ReservedSlots(ctx context.Context, id uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Booking{}).
		Where("destination_id = ?", id).
		Select("COALESCE(SUM(slots_reserved), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *destinationRepository) List(ctx context.Context, page, pageSize int, criteria ...Criterion) ([]db_models.Destination, error) {
	var destinations []db_models.Destination
	err := ApplyCriteria(r.db.WithContext(ctx).Model(&db_models.Destination{}), criteria...).
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&destinations).Error
	if err != nil {
		return nil, err
	}
	return destinations, nil
}
