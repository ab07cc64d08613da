package booking_fx

import (
	"go.uber.org/fx"
	"travelplanner/internal/repositories"
	"travelplanner/internal/services"
)

var Module = fx.Provide(
	repositories.NewBookingRepository,
	services.NewBookingService)
