package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Attraction struct {
	BaseModel
	DestinationID    uuid.UUID           `gorm:"type:uuid;index;not null"`
	Name             string              `gorm:"not null"`
	Type             string              `gorm:"index"`
	Description      string              `gorm:"type:text"`
	Latitude         float64
	Longitude        float64
	ApproximatePrice decimal.NullDecimal `gorm:"type:numeric(10,2);check:chk_attractions_price,approximate_price IS NULL OR approximate_price >= 0"`
}
