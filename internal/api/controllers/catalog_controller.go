package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogImportServiceInterface
}

func NewCatalogController(catalogService services.CatalogImportServiceInterface) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ImportCatalog godoc
// @Summary Import destinations and attractions
// @Description Upserts the Destinations and Attractions sheets of an xlsx workbook in one transaction
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Catalog workbook"
// @Success 200 {object} response_models.CatalogImportSummary
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/catalog/import [post]
func (cc *CatalogController) ImportCatalog(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	summary, err := cc.catalogService.ImportWorkbook(c.Request.Context(), file)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Catalog imported successfully")
}
