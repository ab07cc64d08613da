package response_models

import "github.com/shopspring/decimal"

type DestinationResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Country        string  `json:"country,omitempty"`
	Climate        string  `json:"climate,omitempty"`
	Description    string  `json:"description,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Capacity       *int    `json:"capacity"`
	AvailableSlots int     `json:"available_slots"`
}

type AttractionResponse struct {
	ID            string              `json:"id"`
	DestinationID string              `json:"destination_id"`
	Name          string              `json:"name"`
	Type          string              `json:"type"`
	Description   string              `json:"description,omitempty"`
	Price         decimal.NullDecimal `json:"price"`
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
}
