package controllers_fx

import (
	"go.uber.org/fx"
	"travelplanner/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewDestinationController),
	fx.Provide(controllers.NewAttractionController),
	fx.Provide(controllers.NewBookingController),
	fx.Provide(controllers.NewRouteController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewReviewController),
	fx.Provide(controllers.NewCatalogController))
