package destination_fx

import (
	"go.uber.org/fx"
	"travelplanner/internal/repositories"
	"travelplanner/internal/services"
)

var Module = fx.Provide(
	repositories.NewDestinationRepository,
	repositories.NewDestinationLedger,
	services.NewDestinationService)
