package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/infra"
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/repositories"
	"travelplanner/pkg/utils"
)

type TripServiceInterface interface {
	// CreateTrip rejects reversed dates and any overlap with the user's
	// existing trips.
	CreateTrip(ctx context.Context, actor Actor, req request_models.CreateTripRequest) (*response_models.TripResponse, error)
	ListMine(ctx context.Context, actor Actor) ([]response_models.TripResponse, error)
	GetTrip(ctx context.Context, actor Actor, tripID uuid.UUID) (*response_models.TripResponse, error)
}

type TripService struct {
	tx       infra.Transactor
	tripRepo repositories.TripRepository
	destRepo repositories.DestinationRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewTripService(
	tx infra.Transactor,
	tripRepo repositories.TripRepository,
	destRepo repositories.DestinationRepository,
	logger *zap.Logger,
) TripServiceInterface {
	return &TripService{
		tx:       tx,
		tripRepo: tripRepo,
		destRepo: destRepo,
		logger:   logger.Named("trip"),
		now:      time.Now,
	}
}

func (t *TripService) CreateTrip(ctx context.Context, actor Actor, req request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	if !actor.valid() {
		return nil, utils.ErrUnauthorized
	}

	start, err := utils.ParseDate(strings.TrimSpace(req.StartDate))
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	end, err := utils.ParseDate(strings.TrimSpace(req.EndDate))
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, utils.ErrInvalidInput
	}
	if req.Budget != nil && req.Budget.IsNegative() {
		return nil, utils.ErrInvalidInput
	}

	trip := &db_models.Trip{
		UserID:        actor.ID,
		DestinationID: req.DestinationID,
		Title:         strings.TrimSpace(req.Title),
		StartDate:     start,
		EndDate:       end,
	}
	if req.Budget != nil {
		trip.Budget = decimal.NewNullDecimal(*req.Budget)
	}

	err = t.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		exists, err := t.destRepo.WithTx(tx).Exists(ctx, req.DestinationID)
		if err != nil {
			return err
		}
		if !exists {
			return utils.ErrDestinationNotFound
		}

		trips := t.tripRepo.WithTx(tx)
		overlap, err := trips.HasOverlap(ctx, actor.ID, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return utils.ErrInvalidInput
		}
		return trips.InsertTx(ctx, trip)
	})
	if err != nil {
		return nil, databaseError(t.logger, "create trip", err, zap.String("user_id", actor.ID.String()))
	}

	out := t.toTripResponse(trip)
	return &out, nil
}

func (t *TripService) ListMine(ctx context.Context, actor Actor) ([]response_models.TripResponse, error) {
	trips, err := t.tripRepo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, databaseError(t.logger, "list trips", err, zap.String("user_id", actor.ID.String()))
	}

	out := make([]response_models.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, t.toTripResponse(&trips[i]))
	}
	return out, nil
}

func (t *TripService) GetTrip(ctx context.Context, actor Actor, tripID uuid.UUID) (*response_models.TripResponse, error) {
	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, databaseError(t.logger, "get trip", err, zap.String("trip_id", tripID.String()))
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.UserID != actor.ID {
		return nil, utils.ErrForbidden
	}

	out := t.toTripResponse(trip)
	return &out, nil
}

func (t *TripService) toTripResponse(trip *db_models.Trip) response_models.TripResponse {
	return response_models.TripResponse{
		ID:            trip.ID.String(),
		DestinationID: trip.DestinationID.String(),
		Title:         trip.Title,
		StartDate:     utils.FormatDate(trip.StartDate),
		EndDate:       utils.FormatDate(trip.EndDate),
		Budget:        trip.Budget,
		Status:        TripStatus(trip.StartDate, trip.EndDate, t.now()),
	}
}

// TripStatus classifies a trip against the calendar day of now.
func TripStatus(start, end, now time.Time) string {
	today := utils.StartOfDay(now)
	switch {
	case utils.StartOfDay(end).Before(today):
		return response_models.TripStatusPast
	case utils.StartOfDay(start).After(today):
		return response_models.TripStatusFuture
	default:
		return response_models.TripStatusCurrent
	}
}
