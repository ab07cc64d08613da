package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRouteRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	DestinationID uuid.UUID  `json:"destination_id" binding:"required"`
	TripID        *uuid.UUID `json:"trip_id"`
}

type StopInput struct {
	AttractionID uuid.UUID `json:"attraction_id" binding:"required"`
	Position     int       `json:"position"`
}

// UpdateRouteRequest rewrites scalar fields and, when Stops is present,
// replaces the whole stop list in the same transaction. An empty Stops array
// clears the route.
type UpdateRouteRequest struct {
	Name          *string      `json:"name" binding:"omitempty,min=1,max=200"`
	DestinationID *uuid.UUID   `json:"destination_id"`
	TripID        *uuid.UUID   `json:"trip_id"`
	ClearTrip     bool         `json:"clear_trip"`
	Stops         *[]StopInput `json:"stops" binding:"omitempty,dive"`
}

type AddStopRequest struct {
	AttractionID uuid.UUID `json:"attraction_id" binding:"required"`
	Position     int       `json:"position"`
}

type MoveStopRequest struct {
	Position int `json:"position"`
}

type RouteFilter struct {
	MinBudget     *decimal.Decimal
	MaxBudget     *decimal.Decimal
	Types         []string
	DestinationID *uuid.UUID
	Offset        int
	Limit         int
}
