package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/repositories"
	"travelplanner/pkg/utils"
)

type ReviewServiceInterface interface {
	AddReview(ctx context.Context, actor Actor, req request_models.CreateReviewRequest) (*response_models.ReviewResponse, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID) (*response_models.DestinationReviewsResponse, error)
}

type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	destRepo   repositories.DestinationRepository
	logger     *zap.Logger
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	destRepo repositories.DestinationRepository,
	logger *zap.Logger,
) ReviewServiceInterface {
	return &ReviewService{
		reviewRepo: reviewRepo,
		destRepo:   destRepo,
		logger:     logger.Named("review"),
	}
}

func (s *ReviewService) AddReview(ctx context.Context, actor Actor, req request_models.CreateReviewRequest) (*response_models.ReviewResponse, error) {
	if !actor.valid() {
		return nil, utils.ErrUnauthorized
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.ErrInvalidInput
	}

	exists, err := s.destRepo.Exists(ctx, req.DestinationID)
	if err != nil {
		return nil, databaseError(s.logger, "find destination", err)
	}
	if !exists {
		return nil, utils.ErrDestinationNotFound
	}

	duplicate, err := s.reviewRepo.ExistsForUser(ctx, actor.ID, req.DestinationID)
	if err != nil {
		return nil, databaseError(s.logger, "find review", err)
	}
	if duplicate {
		return nil, utils.ErrReviewAlreadyExists
	}

	review := &db_models.Review{
		UserID:        actor.ID,
		DestinationID: req.DestinationID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
	}
	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrReviewAlreadyExists
		}
		return nil, databaseError(s.logger, "create review", err,
			zap.String("destination_id", req.DestinationID.String()))
	}

	out := toReviewResponse(review)
	return &out, nil
}

func (s *ReviewService) ListByDestination(ctx context.Context, destinationID uuid.UUID) (*response_models.DestinationReviewsResponse, error) {
	exists, err := s.destRepo.Exists(ctx, destinationID)
	if err != nil {
		return nil, databaseError(s.logger, "find destination", err)
	}
	if !exists {
		return nil, utils.ErrDestinationNotFound
	}

	reviews, err := s.reviewRepo.ListByDestination(ctx, destinationID)
	if err != nil {
		return nil, databaseError(s.logger, "list reviews", err, zap.String("destination_id", destinationID.String()))
	}
	avg, err := s.reviewRepo.AverageRating(ctx, destinationID)
	if err != nil {
		return nil, databaseError(s.logger, "average rating", err, zap.String("destination_id", destinationID.String()))
	}

	out := &response_models.DestinationReviewsResponse{
		DestinationID: destinationID.String(),
		AverageRating: avg,
		Count:         len(reviews),
		Reviews:       make([]response_models.ReviewResponse, 0, len(reviews)),
	}
	for i := range reviews {
		out.Reviews = append(out.Reviews, toReviewResponse(&reviews[i]))
	}
	return out, nil
}

func toReviewResponse(review *db_models.Review) response_models.ReviewResponse {
	return response_models.ReviewResponse{
		ID:            review.ID.String(),
		UserID:        review.UserID.String(),
		DestinationID: review.DestinationID.String(),
		Rating:        review.Rating,
		Comment:       review.Comment,
		CreatedAt:     utils.FormatUnixRFC3339(review.CreatedAt),
	}
}
