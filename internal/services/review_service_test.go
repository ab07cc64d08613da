package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"travelplanner/internal/models/request_models"
	"travelplanner/pkg/utils"
)

func TestReviewService_OneReviewPerUserAndDestination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.actor(t)
	bob := env.actor(t)
	destination := env.destination(t, 0, nil)

	_, err := env.reviews.AddReview(ctx, alice, request_models.CreateReviewRequest{DestinationID: destination.ID, Rating: 5, Comment: " lovely "})
	require.NoError(t, err)

	_, err = env.reviews.AddReview(ctx, alice, request_models.CreateReviewRequest{DestinationID: destination.ID, Rating: 1})
	assert.ErrorIs(t, err, utils.ErrReviewAlreadyExists)
	assert.Equal(t, 409, utils.StatusFor(err))

	_, err = env.reviews.AddReview(ctx, bob, request_models.CreateReviewRequest{DestinationID: destination.ID, Rating: 2})
	require.NoError(t, err)

	listed, err := env.reviews.ListByDestination(ctx, destination.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, listed.Count)
	assert.InDelta(t, 3.5, listed.AverageRating, 0.001)
}

func TestReviewService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.actor(t)
	destination := env.destination(t, 0, nil)

	for _, rating := range []int{0, 6} {
		_, err := env.reviews.AddReview(ctx, user, request_models.CreateReviewRequest{DestinationID: destination.ID, Rating: rating})
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	}

	_, err := env.reviews.AddReview(ctx, user, request_models.CreateReviewRequest{DestinationID: uuid.New(), Rating: 3})
	assert.ErrorIs(t, err, utils.ErrDestinationNotFound)

	_, err = env.reviews.ListByDestination(ctx, uuid.New())
	assert.ErrorIs(t, err, utils.ErrDestinationNotFound)

	empty, err := env.reviews.ListByDestination(ctx, destination.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.AverageRating)
}
