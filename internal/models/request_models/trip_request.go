package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTripRequest struct {
	DestinationID uuid.UUID        `json:"destination_id" binding:"required"`
	Title         string           `json:"title" binding:"max=200"`
	StartDate     string           `json:"start_date" binding:"required"`
	EndDate       string           `json:"end_date" binding:"required"`
	Budget        *decimal.Decimal `json:"budget"`
}
