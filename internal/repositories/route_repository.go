package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"travelplanner/internal/models/db_models"
)

// RouteUpdate carries the scalar fields a caller may rewrite. Nil leaves the
// column untouched.
type RouteUpdate struct {
	Name          *string
	DestinationID *uuid.UUID
	TripID        *uuid.UUID
	ClearTrip     bool
}

type RouteRepository interface {
	CreateTx(ctx context.Context, route *db_models.Route) error
	UpdateFieldsTx(ctx context.Context, routeID uuid.UUID, update RouteUpdate) error
	SetPublishedTx(ctx context.Context, routeID uuid.UUID, published bool) error
	SetTotalBudgetTx(ctx context.Context, routeID uuid.UUID, budget decimal.NullDecimal) error
	DeleteTx(ctx context.Context, routeID uuid.UUID) error

	// FindForUpdate loads the bare route row and, where the dialect supports
	// it, holds a row lock until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, routeID uuid.UUID) (*db_models.Route, error)
	// FindWithStops loads a route with its stops ordered by position and each
	// stop's attraction materialized.
	FindWithStops(ctx context.Context, routeID uuid.UUID) (*db_models.Route, error)
	List(ctx context.Context, offset, limit int, criteria ...Criterion) ([]db_models.Route, error)

	InsertStopsTx(ctx context.Context, stops []db_models.RouteStop) error
	DeleteStopsTx(ctx context.Context, routeID uuid.UUID) error
	// DeleteStopTx and MoveStopTx report false when the stop is not part of the route.
	DeleteStopTx(ctx context.Context, routeID, stopID uuid.UUID) (bool, error)
	MoveStopTx(ctx context.Context, routeID, stopID uuid.UUID, position int) (bool, error)
	// StopPrices returns one entry per current stop, duplicates included.
	StopPrices(ctx context.Context, routeID uuid.UUID) ([]decimal.NullDecimal, error)
	StopAttractionIDs(ctx context.Context, routeID uuid.UUID) ([]uuid.UUID, error)

	WithTx(tx *gorm.DB) RouteRepository
}

type routeRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) WithTx(tx *gorm.DB) RouteRepository {
	return &routeRepository{db: tx}
}

func (r *routeRepository) CreateTx(ctx context.Context, route *db_models.Route) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(route).Error
}

func (r *routeRepository) UpdateFieldsTx(ctx context.Context, routeID uuid.UUID, update RouteUpdate) error {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.DestinationID != nil {
		fields["destination_id"] = *update.DestinationID
	}
	switch {
	case update.ClearTrip:
		fields["trip_id"] = nil
	case update.TripID != nil:
		fields["trip_id"] = *update.TripID
	}
	if len(fields) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&db_models.Route{}).
		Where("id = ?", routeID).
		Updates(fields).Error
}

func (r *routeRepository) SetPublishedTx(ctx context.Context, routeID uuid.UUID, published bool) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Route{}).
		Where("id = ?", routeID).
		Update("published", published).Error
}

func (r *routeRepository) SetTotalBudgetTx(ctx context.Context, routeID uuid.UUID, budget decimal.NullDecimal) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Route{}).
		Where("id = ?", routeID).
		Update("total_budget", budget).Error
}

func (r *routeRepository) DeleteTx(ctx context.Context, routeID uuid.UUID) error {
	if err := r.DeleteStopsTx(ctx, routeID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&db_models.Route{}, "id = ?", routeID).Error
}

func (r *routeRepository) FindForUpdate(ctx context.Context, routeID uuid.UUID) (*db_models.Route, error) {
	var route db_models.Route
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&route, "id = ?", routeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) FindWithStops(ctx context.Context, routeID uuid.UUID) (*db_models.Route, error) {
	var route db_models.Route
	err := r.withStops(r.db.WithContext(ctx)).First(&route, "id = ?", routeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) List(ctx context.Context, offset, limit int, criteria ...Criterion) ([]db_models.Route, error) {
	var routes []db_models.Route
	err := r.withStops(ApplyCriteria(r.db.WithContext(ctx).Model(&db_models.Route{}), criteria...)).
		Order("routes.created_at DESC, routes.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) withStops(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_stops.position ASC, route_stops.created_at ASC, route_stops.id ASC")
		}).
		Preload("Stops.Attraction", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
}

func (r *routeRepository) InsertStopsTx(ctx context.Context, stops []db_models.RouteStop) error {
	if len(stops) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&stops).Error
}

func (r *routeRepository) DeleteStopsTx(ctx context.Context, routeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Delete(&db_models.RouteStop{}).Error
}

func (r *routeRepository) DeleteStopTx(ctx context.Context, routeID, stopID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND route_id = ?", stopID, routeID).
		Delete(&db_models.RouteStop{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *routeRepository) MoveStopTx(ctx context.Context, routeID, stopID uuid.UUID, position int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.RouteStop{}).
		Where("id = ? AND route_id = ?", stopID, routeID).
		Update("position", position)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type stopPriceRow struct {
	Price decimal.NullDecimal
}

func (r *routeRepository) StopPrices(ctx context.Context, routeID uuid.UUID) ([]decimal.NullDecimal, error) {
	var rows []stopPriceRow
	err := r.db.WithContext(ctx).
		Table("route_stops").
		Select("attractions.approximate_price AS price").
		Joins("JOIN attractions ON attractions.id = route_stops.attraction_id").
		Where("route_stops.route_id = ?", routeID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	prices := make([]decimal.NullDecimal, 0, len(rows))
	for _, row := range rows {
		prices = append(prices, row.Price)
	}
	return prices, nil
}

func (r *routeRepository) StopAttractionIDs(ctx context.Context, routeID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.RouteStop{}).
		Where("route_id = ?", routeID).
		Pluck("attraction_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
