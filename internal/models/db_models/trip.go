package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Trip struct {
	BaseModel
	UserID        uuid.UUID           `gorm:"type:uuid;index;not null"`
	DestinationID uuid.UUID           `gorm:"type:uuid;index;not null"`
	Title         string
	StartDate     time.Time           `gorm:"not null"`
	EndDate       time.Time           `gorm:"not null"`
	Budget        decimal.NullDecimal `gorm:"type:numeric(12,2)"`

	Routes []Route `gorm:"foreignKey:TripID"`
}
