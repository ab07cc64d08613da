package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Route is an ordered itinerary of attraction stops. TotalBudget is derived
// from the stops and is never written by callers.
type Route struct {
	Entity
	OwnerID       uuid.UUID           `gorm:"type:uuid;index;not null"`
	TripID        *uuid.UUID          `gorm:"type:uuid;index"`
	DestinationID uuid.UUID           `gorm:"type:uuid;index;not null"`
	Name          string              `gorm:"not null"`
	Published     bool                `gorm:"not null;default:false;index"`
	TotalBudget   decimal.NullDecimal `gorm:"type:numeric(12,2)"`

	Stops []RouteStop `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

type RouteStop struct {
	Entity
	RouteID      uuid.UUID `gorm:"type:uuid;index;not null"`
	AttractionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Position     int       `gorm:"not null"`

	Attraction Attraction `gorm:"foreignKey:AttractionID"`
}
