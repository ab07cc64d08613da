package db_models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:user"`

	Bookings []Booking `gorm:"foreignKey:UserID"`
	Trips    []Trip    `gorm:"foreignKey:UserID"`
}
