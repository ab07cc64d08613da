package route_fx

import (
	"go.uber.org/fx"
	"travelplanner/internal/repositories"
	"travelplanner/internal/services"
)

var Module = fx.Provide(
	repositories.NewRouteRepository,
	services.NewRouteService)
