package response_models

import "github.com/shopspring/decimal"

type AttractionSummary struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Type      string              `json:"type"`
	Price     decimal.NullDecimal `json:"price"`
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
}

type RouteStopView struct {
	ID         string            `json:"id"`
	Position   int               `json:"position"`
	Attraction AttractionSummary `json:"attraction"`
}

type RouteView struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	OwnerID       string              `json:"owner_id"`
	TripID        *string             `json:"trip_id"`
	DestinationID string              `json:"destination_id"`
	TotalBudget   decimal.NullDecimal `json:"total_budget"`
	Published     bool                `json:"published"`
	CreatedAt     string              `json:"created_at"`
	Stops         []RouteStopView     `json:"stops"`
}

type AddStopResponse struct {
	Stop  RouteStopView `json:"stop"`
	Route RouteView     `json:"route"`
}
