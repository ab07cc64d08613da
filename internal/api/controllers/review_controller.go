package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type ReviewController struct {
	reviewService services.ReviewServiceInterface
}

func NewReviewController(reviewService services.ReviewServiceInterface) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// CreateReview godoc
// @Summary Review a destination
// @Description One review per user and destination, rating 1 to 5
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body request_models.CreateReviewRequest true "Review"
// @Success 201 {object} response_models.ReviewResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reviews [post]
func (r *ReviewController) CreateReview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req request_models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	review, err := r.reviewService.AddReview(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, review, "Review created successfully")
}

// ListDestinationReviews godoc
// @Summary List reviews of a destination
// @Tags Reviews
// @Produce json
// @Param destinationId path string true "Destination ID"
// @Success 200 {object} response_models.DestinationReviewsResponse
// @Failure 404 {object} utils.APIResponse
// @Router /reviews/destination/{destinationId} [get]
func (r *ReviewController) ListDestinationReviews(c *gin.Context) {
	id, ok := uuidParam(c, "destinationId")
	if !ok {
		return
	}

	reviews, err := r.reviewService.ListByDestination(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Reviews fetched successfully")
}
