package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

// CreateBooking godoc
// @Summary Book slots at a destination
// @Description Reserves slots on the destination and records the booking atomically
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.CreateBookingRequest true "Destination and slot count"
// @Success 201 {object} response_models.BookingResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings [post]
func (b *BookingController) CreateBooking(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req request_models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	destinationID, err := uuid.Parse(req.DestinationID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid destination_id")
		return
	}

	booking, err := b.bookingService.Create(c.Request.Context(), actor, destinationID, req.Slots)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, booking, "Booking created successfully")
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Deletes the booking and returns its slots to the destination
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/{id} [delete]
func (b *BookingController) CancelBooking(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := b.bookingService.Cancel(c.Request.Context(), actor, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Booking cancelled successfully")
}

// ListMyBookings godoc
// @Summary List my bookings
// @Tags Bookings
// @Produce json
// @Success 200 {array} response_models.BookingResponse
// @Security BearerAuth
// @Router /bookings/me [get]
func (b *BookingController) ListMyBookings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	bookings, err := b.bookingService.ListForUser(c.Request.Context(), actor.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}

// ListDestinationBookings godoc
// @Summary List bookings of a destination
// @Tags Bookings
// @Produce json
// @Param destinationId path string true "Destination ID"
// @Success 200 {array} response_models.BookingResponse
// @Failure 404 {object} utils.APIResponse
// @Router /bookings/destination/{destinationId} [get]
func (b *BookingController) ListDestinationBookings(c *gin.Context) {
	id, ok := uuidParam(c, "destinationId")
	if !ok {
		return
	}

	bookings, err := b.bookingService.ListForDestination(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}
