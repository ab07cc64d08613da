package catalog_fx

import (
	"go.uber.org/fx"
	"travelplanner/internal/services"
)

// Module expects destination_fx and attraction_fx to be present.
var Module = fx.Provide(services.NewCatalogImportService)
