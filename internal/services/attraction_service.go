package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/repositories"
	"travelplanner/pkg/utils"
)

// AttractionServiceInterface is the read side of the attraction catalog.
type AttractionServiceInterface interface {
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]response_models.AttractionResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*response_models.AttractionResponse, error)
	// FindByType matches a case-insensitive substring of the attraction type.
	FindByType(ctx context.Context, typeQuery string) ([]response_models.AttractionResponse, error)
	ListTypes(ctx context.Context) ([]string, error)
}

type AttractionService struct {
	attractionRepo repositories.AttractionRepository
	destRepo       repositories.DestinationRepository
	logger         *zap.Logger
}

func NewAttractionService(
	attractionRepo repositories.AttractionRepository,
	destRepo repositories.DestinationRepository,
	logger *zap.Logger,
) AttractionServiceInterface {
	return &AttractionService{
		attractionRepo: attractionRepo,
		destRepo:       destRepo,
		logger:         logger.Named("attraction"),
	}
}

func (a *AttractionService) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]response_models.AttractionResponse, error) {
	exists, err := a.destRepo.Exists(ctx, destinationID)
	if err != nil {
		return nil, databaseError(a.logger, "find destination", err, zap.String("destination_id", destinationID.String()))
	}
	if !exists {
		return nil, utils.ErrDestinationNotFound
	}

	attractions, err := a.attractionRepo.ListByDestination(ctx, destinationID)
	if err != nil {
		return nil, databaseError(a.logger, "list attractions", err, zap.String("destination_id", destinationID.String()))
	}
	return toAttractionResponses(attractions), nil
}

func (a *AttractionService) FindByID(ctx context.Context, id uuid.UUID) (*response_models.AttractionResponse, error) {
	attraction, err := a.attractionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, databaseError(a.logger, "get attraction", err, zap.String("attraction_id", id.String()))
	}
	if attraction == nil {
		return nil, utils.ErrAttractionNotFound
	}

	out := toAttractionResponse(attraction)
	return &out, nil
}

func (a *AttractionService) FindByType(ctx context.Context, typeQuery string) ([]response_models.AttractionResponse, error) {
	typeQuery = strings.TrimSpace(typeQuery)
	if typeQuery == "" {
		return nil, utils.ErrInvalidInput
	}

	attractions, err := a.attractionRepo.Search(ctx, repositories.Contains{Column: "type", Substring: typeQuery})
	if err != nil {
		return nil, databaseError(a.logger, "find attractions by type", err, zap.String("type", typeQuery))
	}
	return toAttractionResponses(attractions), nil
}

func (a *AttractionService) ListTypes(ctx context.Context) ([]string, error) {
	types, err := a.attractionRepo.ListTypes(ctx)
	if err != nil {
		return nil, databaseError(a.logger, "list attraction types", err)
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}
