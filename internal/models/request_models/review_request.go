package request_models

import "github.com/google/uuid"

type CreateReviewRequest struct {
	DestinationID uuid.UUID `json:"destination_id" binding:"required"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment" binding:"max=2000"`
}
