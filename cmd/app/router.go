package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelplanner/internal/api/controllers"
	"travelplanner/internal/config"
	"travelplanner/internal/models/db_models"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/middleware"
	"travelplanner/pkg/utils"
)

type Handlers struct {
	fx.In

	Account     *controllers.AccountController
	Destination *controllers.DestinationController
	Attraction  *controllers.AttractionController
	Booking     *controllers.BookingController
	Route       *controllers.RouteController
	Trip        *controllers.TripController
	Review      *controllers.ReviewController
	Catalog     *controllers.CatalogController
}

func ProvideRouter(
	cfg config.Config,
	logger *zap.Logger,
	jwtManager *utils.JWTManager,
	revoked mem.RevokedTokenStore,
	handlers Handlers,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigin))
	r.Use(gin.Recovery())

	RegisterRoutes(r, handlers,
		middleware.JWTAuthMiddleware(jwtManager, revoked),
		middleware.OptionalJWTMiddleware(jwtManager, revoked))

	return r
}

func RegisterRoutes(r *gin.Engine, h Handlers, auth, optionalAuth gin.HandlerFunc) {
	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", h.Account.Register)
	accountGroup.POST("/login", h.Account.Login)
	accountGroup.POST("/logout", auth, h.Account.Logout)
	accountGroup.GET("/me", auth, h.Account.Me)

	destinationGroup := r.Group("/destinations")
	destinationGroup.GET("", h.Destination.ListDestinations)
	destinationGroup.GET("/:id", h.Destination.GetDestination)
	destinationGroup.GET("/:id/attractions", h.Destination.ListAttractions)

	attractionGroup := r.Group("/attractions")
	attractionGroup.GET("", h.Attraction.FindByType)
	attractionGroup.GET("/types", h.Attraction.ListTypes)
	attractionGroup.GET("/:id", h.Attraction.GetAttraction)

	bookingGroup := r.Group("/bookings")
	bookingGroup.POST("", auth, h.Booking.CreateBooking)
	bookingGroup.GET("/me", auth, h.Booking.ListMyBookings)
	bookingGroup.GET("/destination/:destinationId", h.Booking.ListDestinationBookings)
	bookingGroup.DELETE("/:id", auth, h.Booking.CancelBooking)

	routeGroup := r.Group("/routes")
	routeGroup.GET("", h.Route.ListPublished)
	routeGroup.GET("/search", h.Route.Search)
	routeGroup.GET("/mine", auth, h.Route.ListMine)
	routeGroup.GET("/trip/:tripId", auth, h.Route.ListByTrip)
	routeGroup.GET("/:id", optionalAuth, h.Route.GetRoute)
	routeGroup.POST("", auth, h.Route.CreateRoute)
	routeGroup.PUT("/:id", auth, h.Route.UpdateRoute)
	routeGroup.DELETE("/:id", auth, h.Route.DeleteRoute)
	routeGroup.POST("/:id/stops", auth, h.Route.AddStop)
	routeGroup.PUT("/:id/stops/:stopId", auth, h.Route.MoveStop)
	routeGroup.DELETE("/:id/stops/:stopId", auth, h.Route.RemoveStop)
	routeGroup.POST("/:id/publish", auth, h.Route.Publish)
	routeGroup.DELETE("/:id/publish", auth, h.Route.Unpublish)

	tripGroup := r.Group("/trips", auth)
	tripGroup.POST("", h.Trip.CreateTrip)
	tripGroup.GET("/mine", h.Trip.ListMyTrips)
	tripGroup.GET("/:id", h.Trip.GetTrip)

	reviewGroup := r.Group("/reviews")
	reviewGroup.POST("", auth, h.Review.CreateReview)
	reviewGroup.GET("/destination/:destinationId", h.Review.ListDestinationReviews)

	adminGroup := r.Group("/admin", auth, middleware.RoleMiddleware(db_models.RoleAdmin))
	adminGroup.POST("/catalog/import", h.Catalog.ImportCatalog)
}
