package db_models

import "github.com/google/uuid"

type Review struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_destination"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_user_destination"`
	Rating        int       `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment       string    `gorm:"type:text"`
}
