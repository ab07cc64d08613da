package db_models

import "github.com/google/uuid"

type Booking struct {
	Entity
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	DestinationID uuid.UUID `gorm:"type:uuid;index;not null"`
	SlotsReserved int       `gorm:"not null;check:chk_bookings_slots_reserved,slots_reserved > 0"`

	Destination *Destination `gorm:"foreignKey:DestinationID"`
}
