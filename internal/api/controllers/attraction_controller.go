package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type AttractionController struct {
	attractionService services.AttractionServiceInterface
}

func NewAttractionController(attractionService services.AttractionServiceInterface) *AttractionController {
	return &AttractionController{
		attractionService: attractionService,
	}
}

// GetAttraction godoc
// @Summary Get attraction by ID
// @Tags Attractions
// @Produce json
// @Param id path string true "Attraction ID"
// @Success 200 {object} response_models.AttractionResponse
// @Failure 404 {object} utils.APIResponse
// @Router /attractions/{id} [get]
func (a *AttractionController) GetAttraction(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	attraction, err := a.attractionService.FindByID(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, attraction, "Attraction fetched successfully")
}

// FindByType godoc
// @Summary Search attractions by type
// @Description Case-insensitive substring match on the attraction type
// @Tags Attractions
// @Produce json
// @Param type query string true "Type contains"
// @Success 200 {array} response_models.AttractionResponse
// @Router /attractions [get]
func (a *AttractionController) FindByType(c *gin.Context) {
	typeQuery := strings.TrimSpace(c.Query("type"))
	if typeQuery == "" {
		utils.RespondError(c, http.StatusBadRequest, "type is required")
		return
	}

	attractions, err := a.attractionService.FindByType(c.Request.Context(), typeQuery)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, attractions, "Attractions fetched successfully")
}

// ListTypes godoc
// @Summary List attraction types
// @Tags Attractions
// @Produce json
// @Success 200 {array} string
// @Router /attractions/types [get]
func (a *AttractionController) ListTypes(c *gin.Context) {
	types, err := a.attractionService.ListTypes(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, types, "Attraction types fetched successfully")
}
