package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type DestinationController struct {
	destinationService services.DestinationServiceInterface
	attractionService  services.AttractionServiceInterface
}

func NewDestinationController(
	destinationService services.DestinationServiceInterface,
	attractionService services.AttractionServiceInterface,
) *DestinationController {
	return &DestinationController{
		destinationService: destinationService,
		attractionService:  attractionService,
	}
}

// ListDestinations godoc
// @Summary List destinations
// @Description Paginated destinations, optionally filtered by a name substring
// @Tags Destinations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Param name query string false "Name contains"
// @Success 200 {array} response_models.DestinationResponse
// @Router /destinations [get]
func (d *DestinationController) ListDestinations(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	destinations, err := d.destinationService.ListDestinations(c.Request.Context(), page, pageSize, c.Query("name"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, destinations, "Destinations fetched successfully")
}

// GetDestination godoc
// @Summary Get destination by ID
// @Description Includes the current available slots and capacity
// @Tags Destinations
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} response_models.DestinationResponse
// @Failure 404 {object} utils.APIResponse
// @Router /destinations/{id} [get]
func (d *DestinationController) GetDestination(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	destination, err := d.destinationService.GetDestination(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, destination, "Destination fetched successfully")
}

// ListAttractions godoc
// @Summary List attractions of a destination
// @Tags Destinations
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {array} response_models.AttractionResponse
// @Failure 404 {object} utils.APIResponse
// @Router /destinations/{id}/attractions [get]
func (d *DestinationController) ListAttractions(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	attractions, err := d.attractionService.ListByDestination(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, attractions, "Attractions fetched successfully")
}
