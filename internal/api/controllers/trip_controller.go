package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Dates are YYYY-MM-DD. A trip may not overlap another trip of the same user.
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip"
// @Success 201 {object} response_models.TripResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Trip created successfully")
}

// ListMyTrips godoc
// @Summary List my trips
// @Tags Trips
// @Produce json
// @Success 200 {array} response_models.TripResponse
// @Security BearerAuth
// @Router /trips/mine [get]
func (t *TripController) ListMyTrips(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	trips, err := t.tripService.ListMine(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetTrip godoc
// @Summary Get a trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response_models.TripResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	trip, err := t.tripService.GetTrip(c.Request.Context(), actor, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}
