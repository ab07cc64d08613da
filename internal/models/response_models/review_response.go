package response_models

type ReviewResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	DestinationID string `json:"destination_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	CreatedAt     string `json:"created_at"`
}

type DestinationReviewsResponse struct {
	DestinationID string           `json:"destination_id"`
	AverageRating float64          `json:"average_rating"`
	Count         int              `json:"count"`
	Reviews       []ReviewResponse `json:"reviews"`
}
