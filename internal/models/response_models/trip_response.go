package response_models

import "github.com/shopspring/decimal"

const (
	TripStatusPast    = "past"
	TripStatusCurrent = "current"
	TripStatusFuture  = "future"
)

type TripResponse struct {
	ID            string              `json:"id"`
	DestinationID string              `json:"destination_id"`
	Title         string              `json:"title"`
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	Budget        decimal.NullDecimal `json:"budget"`
	Status        string              `json:"status"`
}
