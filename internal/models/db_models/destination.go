package db_models

// Destination carries the slot ledger. AvailableSlots is only ever changed
// through repositories.DestinationLedger.
type Destination struct {
	BaseModel
	Name           string `gorm:"uniqueIndex;not null"`
	Country        string
	Climate        string
	Description    string `gorm:"type:text"`
	Latitude       float64
	Longitude      float64
	Capacity       *int `gorm:"check:chk_destinations_capacity,capacity IS NULL OR capacity >= 0"`
	AvailableSlots int  `gorm:"not null;default:0;check:chk_destinations_available_slots,available_slots >= 0"`

	Attractions []Attraction `gorm:"foreignKey:DestinationID"`
}
