package response_models

type BookingResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	DestinationID   string `json:"destination_id"`
	DestinationName string `json:"destination_name,omitempty"`
	SlotsReserved   int    `json:"slots_reserved"`
	CreatedAt       string `json:"created_at"`
}
