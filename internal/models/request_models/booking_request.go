package request_models

type CreateBookingRequest struct {
	DestinationID string `json:"destination_id" binding:"required,uuid"`
	// Slots is checked by the booking service so every entry point reports a
	// non-positive value the same way.
	Slots int `json:"slots"`
}
