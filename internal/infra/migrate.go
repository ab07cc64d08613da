package infra

import (
	"fmt"

	"gorm.io/gorm"
	"travelplanner/internal/models/db_models"
)

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Destination{},
		&db_models.Attraction{},
		&db_models.Trip{},
		&db_models.Route{},
		&db_models.RouteStop{},
		&db_models.Booking{},
		&db_models.Review{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_route_stops_route_position ON route_stops(route_id, position)`).Error
}
