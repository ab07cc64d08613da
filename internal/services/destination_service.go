package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/repositories"
	"travelplanner/pkg/utils"
)

type DestinationServiceInterface interface {
	GetDestination(ctx context.Context, id uuid.UUID) (*response_models.DestinationResponse, error)
	ListDestinations(ctx context.Context, page, pageSize int, name string) ([]response_models.DestinationResponse, error)
}

type DestinationService struct {
	destRepo repositories.DestinationRepository
	logger   *zap.Logger
}

func NewDestinationService(destRepo repositories.DestinationRepository, logger *zap.Logger) DestinationServiceInterface {
	return &DestinationService{
		destRepo: destRepo,
		logger:   logger.Named("destination"),
	}
}

func (d *DestinationService) GetDestination(ctx context.Context, id uuid.UUID) (*response_models.DestinationResponse, error) {
	destination, err := d.destRepo.FindByID(ctx, id)
	if err != nil {
		return nil, databaseError(d.logger, "get destination", err, zap.String("destination_id", id.String()))
	}
	if destination == nil {
		return nil, utils.ErrDestinationNotFound
	}

	out := toDestinationResponse(destination)
	return &out, nil
}

func (d *DestinationService) ListDestinations(ctx context.Context, page, pageSize int, name string) ([]response_models.DestinationResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	destinations, err := d.destRepo.List(ctx, page, pageSize, repositories.Contains{Column: "name", Substring: name})
	if err != nil {
		return nil, databaseError(d.logger, "list destinations", err)
	}

	out := make([]response_models.DestinationResponse, 0, len(destinations))
	for i := range destinations {
		out = append(out, toDestinationResponse(&destinations[i]))
	}
	return out, nil
}
