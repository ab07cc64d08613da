package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type RouteController struct {
	routeService services.RouteServiceInterface
}

func NewRouteController(routeService services.RouteServiceInterface) *RouteController {
	return &RouteController{
		routeService: routeService,
	}
}

// ListPublished godoc
// @Summary List published routes
// @Description Routes without a budget pass the budget bounds. types matches any stop's attraction type.
// @Tags Routes
// @Produce json
// @Param min_budget query number false "Minimum total budget"
// @Param max_budget query number false "Maximum total budget"
// @Param types query string false "Comma separated attraction types"
// @Param destination_id query string false "Destination ID"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20) maximum(100)
// @Success 200 {array} response_models.RouteView
// @Failure 400 {object} utils.APIResponse
// @Router /routes [get]
func (r *RouteController) ListPublished(c *gin.Context) {
	filter, err := parseRouteFilter(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	routes, err := r.routeService.ListPublished(c.Request.Context(), filter)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, routes, "Routes fetched successfully")
}

// Search godoc
// @Summary Search published routes by name
// @Tags Routes
// @Produce json
// @Param q query string false "Name contains"
// @Param limit query int false "Limit" default(20) maximum(100)
// @Success 200 {array} response_models.RouteView
// @Router /routes/search [get]
func (r *RouteController) Search(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
		return
	}

	routes, err := r.routeService.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, routes, "Routes fetched successfully")
}

// ListMine godoc
// @Summary List my routes
// @Description Drafts included
// @Tags Routes
// @Produce json
// @Success 200 {array} response_models.RouteView
// @Security BearerAuth
// @Router /routes/mine [get]
func (r *RouteController) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	routes, err := r.routeService.ListMine(c.Request.Context(), actor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, routes, "Routes fetched successfully")
}

// ListByTrip godoc
// @Summary List routes of a trip
// @Tags Routes
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {array} response_models.RouteView
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /routes/trip/{tripId} [get]
func (r *RouteController) ListByTrip(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "tripId")
	if !ok {
		return
	}

	routes, err := r.routeService.ListByTrip(c.Request.Context(), actor, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, routes, "Routes fetched successfully")
}

// GetRoute godoc
// @Summary Get a route
// @Description Drafts are only visible to their owner
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} response_models.RouteView
// @Failure 404 {object} utils.APIResponse
// @Router /routes/{id} [get]
func (r *RouteController) GetRoute(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	route, err := r.routeService.Get(c.Request.Context(), optionalActor(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, route, "Route fetched successfully")
}

// CreateRoute godoc
// @Summary Create a draft route
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body request_models.CreateRouteRequest true "Route"
// @Success 201 {object} response_models.RouteView
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /routes [post]
func (r *RouteController) CreateRoute(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req request_models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	route, err := r.routeService.Create(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, route, "Route created successfully")
}

// UpdateRoute godoc
// @Summary Update a route
// @Description Rewrites the given fields. A stops array replaces every stop and recomputes the budget.
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path string true "Route ID"
// @Param request body request_models.UpdateRouteRequest true "Fields to change"
// @Success 200 {object} response_models.RouteView
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /routes/{id} [put]
func (r *RouteController) UpdateRoute(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	route, err := r.routeService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, route, "Route updated successfully")
}

// DeleteRoute godoc
// @Summary Delete a route and its stops
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /routes/{id} [delete]
func (r *RouteController) DeleteRoute(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := r.routeService.Delete(c.Request.Context(), actor, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Route deleted successfully")
}

// AddStop godoc
// @Summary Add a stop
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path string true "Route ID"
// @Param request body request_models.AddStopRequest true "Attraction and position"
// @Success 201 {object} response_models.AddStopResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /routes/{id}/stops [post]
func (r *RouteController) AddStop(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.AddStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	out, err := r.routeService.AddStop(c.Request.Context(), actor, id, req.AttractionID, req.Position)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, out, "Stop added successfully")
}

// MoveStop godoc
// @Summary Move a stop
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path string true "Route ID"
// @Param stopId path string true "Stop ID"
// @Param request body request_models.MoveStopRequest true "New position"
// @Success 200 {object} response_models.RouteView
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /routes/{id}/stops/{stopId} [put]
func (r *RouteController) MoveStop(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stopID, ok := uuidParam(c, "stopId")
	if !ok {
		return
	}

	var req request_models.MoveStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	route, err := r.routeService.MoveStop(c.Request.Context(), actor, id, stopID, req.Position)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, route, "Stop moved successfully")
}

// RemoveStop godoc
// @Summary Remove a stop
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Param stopId path string true "Stop ID"
// @Success 200 {object} response_models.RouteView
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /routes/{id}/stops/{stopId} [delete]
func (r *RouteController) RemoveStop(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stopID, ok := uuidParam(c, "stopId")
	if !ok {
		return
	}

	route, err := r.routeService.RemoveStop(c.Request.Context(), actor, id, stopID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, route, "Stop removed successfully")
}

// Publish godoc
// @Summary Publish a route
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} response_models.RouteView
// @Security BearerAuth
// @Router /routes/{id}/publish [post]
func (r *RouteController) Publish(c *gin.Context) {
	r.setPublished(c, true)
}

// Unpublish godoc
// @Summary Return a route to draft
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} response_models.RouteView
// @Security BearerAuth
// @Router /routes/{id}/publish [delete]
func (r *RouteController) Unpublish(c *gin.Context) {
	r.setPublished(c, false)
}

func (r *RouteController) setPublished(c *gin.Context, published bool) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	publish, message := r.routeService.Unpublish, "Route unpublished"
	if published {
		publish, message = r.routeService.Publish, "Route published"
	}

	route, err := publish(c.Request.Context(), actor, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, route, message)
}

func parseRouteFilter(c *gin.Context) (request_models.RouteFilter, error) {
	var filter request_models.RouteFilter

	if raw := c.Query("min_budget"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("Invalid min_budget")
		}
		filter.MinBudget = &v
	}
	if raw := c.Query("max_budget"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("Invalid max_budget")
		}
		filter.MaxBudget = &v
	}

	for _, raw := range c.QueryArray("types") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Types = append(filter.Types, t)
			}
		}
	}

	if raw := c.Query("destination_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("Invalid destination_id")
		}
		filter.DestinationID = &id
	}

	var err error
	if filter.Offset, err = strconv.Atoi(c.DefaultQuery("offset", "0")); err != nil {
		return filter, errors.New("Invalid offset")
	}
	if filter.Limit, err = strconv.Atoi(c.DefaultQuery("limit", "0")); err != nil {
		return filter, errors.New("Invalid limit")
	}
	return filter, nil
}
