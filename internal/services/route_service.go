package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/infra"
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/repositories"
	"travelplanner/pkg/utils"
)

const (
	defaultRouteLimit = 20
	maxRouteLimit     = 100
)

type RouteServiceInterface interface {
	Create(ctx context.Context, actor Actor, req request_models.CreateRouteRequest) (*response_models.RouteView, error)
	// Get returns NotFound for a draft read by anyone but its owner.
	Get(ctx context.Context, actor *Actor, routeID uuid.UUID) (*response_models.RouteView, error)
	Update(ctx context.Context, actor Actor, routeID uuid.UUID, req request_models.UpdateRouteRequest) (*response_models.RouteView, error)
	Delete(ctx context.Context, actor Actor, routeID uuid.UUID) error

	AddStop(ctx context.Context, actor Actor, routeID, attractionID uuid.UUID, position int) (*response_models.AddStopResponse, error)
	MoveStop(ctx context.Context, actor Actor, routeID, stopID uuid.UUID, position int) (*response_models.RouteView, error)
	RemoveStop(ctx context.Context, actor Actor, routeID, stopID uuid.UUID) (*response_models.RouteView, error)
	ReplaceStops(ctx context.Context, actor Actor, routeID uuid.UUID, stops []request_models.StopInput) (*response_models.RouteView, error)

	Publish(ctx context.Context, actor Actor, routeID uuid.UUID) (*response_models.RouteView, error)
	Unpublish(ctx context.Context, actor Actor, routeID uuid.UUID) (*response_models.RouteView, error)

	Search(ctx context.Context, query string, limit int) ([]response_models.RouteView, error)
	ListPublished(ctx context.Context, filter request_models.RouteFilter) ([]response_models.RouteView, error)
	ListMine(ctx context.Context, actor Actor) ([]response_models.RouteView, error)
	ListByTrip(ctx context.Context, actor Actor, tripID uuid.UUID) ([]response_models.RouteView, error)
}

type RouteService struct {
	tx             infra.Transactor
	routeRepo      repositories.RouteRepository
	attractionRepo repositories.AttractionRepository
	destRepo       repositories.DestinationRepository
	tripRepo       repositories.TripRepository
	logger         *zap.Logger
}

func NewRouteService(
	tx infra.Transactor,
	routeRepo repositories.RouteRepository,
	attractionRepo repositories.AttractionRepository,
	destRepo repositories.DestinationRepository,
	tripRepo repositories.TripRepository,
	logger *zap.Logger,
) RouteServiceInterface {
	return &RouteService{
		tx:             tx,
		routeRepo:      routeRepo,
		attractionRepo: attractionRepo,
		destRepo:       destRepo,
		tripRepo:       tripRepo,
		logger:         logger.Named("route"),
	}
}

// routeUnit bundles the repositories bound to one transaction.
type routeUnit struct {
	routes       repositories.RouteRepository
	attractions  repositories.AttractionRepository
	destinations repositories.DestinationRepository
	trips        repositories.TripRepository
}

func (s *RouteService) unit(tx *gorm.DB) routeUnit {
	return routeUnit{
		routes:       s.routeRepo.WithTx(tx),
		attractions:  s.attractionRepo.WithTx(tx),
		destinations: s.destRepo.WithTx(tx),
		trips:        s.tripRepo.WithTx(tx),
	}
}

// withOwnedRoute locks the route, applies the ownership rule and runs fn,
// all inside one transaction.
func (s *RouteService) withOwnedRoute(
	ctx context.Context,
	op string,
	actor Actor,
	routeID uuid.UUID,
	fn func(u routeUnit, route *db_models.Route) error,
) error {
	ctx, span := startSpan(ctx, "route."+op, attribute.String("route_id", routeID.String()))
	defer span.End()

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		u := s.unit(tx)

		route, err := u.routes.FindForUpdate(ctx, routeID)
		if err != nil {
			return err
		}
		if route == nil {
			return utils.ErrRouteNotFound
		}
		if !CanMutateRoute(actor, route) {
			return utils.ErrForbidden
		}

		return fn(u, route)
	})
	return finishSpan(span, s.logger, op+" route", err,
		zap.String("route_id", routeID.String()),
		zap.String("actor_id", actor.ID.String()))
}

// mutate runs fn through withOwnedRoute and reads the resulting route, with
// stops, in the same transaction.
func (s *RouteService) mutate(
	ctx context.Context,
	op string,
	actor Actor,
	routeID uuid.UUID,
	fn func(u routeUnit, route *db_models.Route) error,
) (*db_models.Route, error) {
	var out *db_models.Route
	err := s.withOwnedRoute(ctx, op, actor, routeID, func(u routeUnit, route *db_models.Route) error {
		if err := fn(u, route); err != nil {
			return err
		}

		loaded, err := u.routes.FindWithStops(ctx, route.ID)
		if err != nil {
			return err
		}
		if loaded == nil {
			return utils.ErrRouteNotFound
		}
		out = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RouteService) mutateView(
	ctx context.Context,
	op string,
	actor Actor,
	routeID uuid.UUID,
	fn func(u routeUnit, route *db_models.Route) error,
) (*response_models.RouteView, error) {
	route, err := s.mutate(ctx, op, actor, routeID, fn)
	if err != nil {
		return nil, err
	}
	view := toRouteView(route)
	return &view, nil
}

func (s *RouteService) Create(ctx context.Context, actor Actor, req request_models.CreateRouteRequest) (*response_models.RouteView, error) {
	ctx, span := startSpan(ctx, "route.create", attribute.String("destination_id", req.DestinationID.String()))
	defer span.End()

	if !actor.valid() {
		return nil, utils.ErrUnauthorized
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.ErrInvalidInput
	}

	route := &db_models.Route{
		OwnerID:       actor.ID,
		TripID:        req.TripID,
		DestinationID: req.DestinationID,
		Name:          name,
	}

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		u := s.unit(tx)

		exists, err := u.destinations.Exists(ctx, req.DestinationID)
		if err != nil {
			return err
		}
		if !exists {
			return utils.ErrDestinationNotFound
		}
		if req.TripID != nil {
			if err := s.checkTrip(ctx, u, actor, *req.TripID); err != nil {
				return err
			}
		}
		return u.routes.CreateTx(ctx, route)
	})
	if err != nil {
		return nil, finishSpan(span, s.logger, "create route", err, zap.String("actor_id", actor.ID.String()))
	}

	route.Stops = []db_models.RouteStop{}
	view := toRouteView(route)
	return &view, nil
}

func (s *RouteService) Get(ctx context.Context, actor *Actor, routeID uuid.UUID) (*response_models.RouteView, error) {
	route, err := s.routeRepo.FindWithStops(ctx, routeID)
	if err != nil {
		return nil, databaseError(s.logger, "get route", err, zap.String("route_id", routeID.String()))
	}
	if !CanViewRoute(actor, route) {
		return nil, utils.ErrRouteNotFound
	}
	view := toRouteView(route)
	return &view, nil
}

func (s *RouteService) Update(ctx context.Context, actor Actor, routeID uuid.UUID, req request_models.UpdateRouteRequest) (*response_models.RouteView, error) {
	return s.mutateView(ctx, "update", actor, routeID, func(u routeUnit, route *db_models.Route) error {
		update := repositories.RouteUpdate{ClearTrip: req.ClearTrip}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return utils.ErrInvalidInput
			}
			update.Name = &name
		}

		if req.DestinationID != nil && *req.DestinationID != route.DestinationID {
			exists, err := u.destinations.Exists(ctx, *req.DestinationID)
			if err != nil {
				return err
			}
			if !exists {
				return utils.ErrInvalidReference
			}
			update.DestinationID = req.DestinationID
			route.DestinationID = *req.DestinationID
		}

		if req.TripID != nil && !req.ClearTrip {
			if err := s.checkTrip(ctx, u, actor, *req.TripID); err != nil {
				return err
			}
			update.TripID = req.TripID
		}

		if err := u.routes.UpdateFieldsTx(ctx, route.ID, update); err != nil {
			return err
		}

		if req.Stops != nil {
			return s.replaceStops(ctx, u, route, *req.Stops)
		}
		if update.DestinationID != nil {
			return s.checkExistingStops(ctx, u, route)
		}
		return nil
	})
}

func (s *RouteService) Delete(ctx context.Context, actor Actor, routeID uuid.UUID) error {
	return s.withOwnedRoute(ctx, "delete", actor, routeID, func(u routeUnit, route *db_models.Route) error {
		return u.routes.DeleteTx(ctx, route.ID)
	})
}

func (s *RouteService) AddStop(ctx context.Context, actor Actor, routeID, attractionID uuid.UUID, position int) (*response_models.AddStopResponse, error) {
	var stopID uuid.UUID
	route, err := s.mutate(ctx, "add_stop", actor, routeID, func(u routeUnit, route *db_models.Route) error {
		if err := s.checkAttractions(ctx, u, route.DestinationID, []uuid.UUID{attractionID}); err != nil {
			return err
		}

		stop := db_models.RouteStop{RouteID: route.ID, AttractionID: attractionID, Position: position}
		stops := []db_models.RouteStop{stop}
		if err := u.routes.InsertStopsTx(ctx, stops); err != nil {
			return err
		}
		stopID = stops[0].ID

		return s.recomputeBudget(ctx, u, route.ID)
	})
	if err != nil {
		return nil, err
	}

	out := &response_models.AddStopResponse{Route: toRouteView(route)}
	for _, stop := range out.Route.Stops {
		if stop.ID == stopID.String() {
			out.Stop = stop
			break
		}
	}
	return out, nil
}

func (s *RouteService) MoveStop(ctx context.Context, actor Actor, routeID, stopID uuid.UUID, position int) (*response_models.RouteView, error) {
	return s.mutateView(ctx, "move_stop", actor, routeID, func(u routeUnit, route *db_models.Route) error {
		moved, err := u.routes.MoveStopTx(ctx, route.ID, stopID, position)
		if err != nil {
			return err
		}
		if !moved {
			return utils.ErrStopNotFound
		}
		return nil
	})
}

func (s *RouteService) RemoveStop(ctx context.Context, actor Actor, routeID, stopID uuid.UUID) (*response_models.RouteView, error) {
	return s.mutateView(ctx, "remove_stop", actor, routeID, func(u routeUnit, route *db_models.Route) error {
		deleted, err := u.routes.DeleteStopTx(ctx, route.ID, stopID)
		if err != nil {
			return err
		}
		if !deleted {
			return utils.ErrStopNotFound
		}
		return s.recomputeBudget(ctx, u, route.ID)
	})
}

func (s *RouteService) ReplaceStops(ctx context.Context, actor Actor, routeID uuid.UUID, stops []request_models.StopInput) (*response_models.RouteView, error) {
	return s.mutateView(ctx, "replace_stops", actor, routeID, func(u routeUnit, route *db_models.Route) error {
		return s.replaceStops(ctx, u, route, stops)
	})
}

func (s *RouteService) Publish(ctx context.Context, actor Actor, routeID uuid.UUID) (*response_models.RouteView, error) {
	return s.setPublished(ctx, actor, routeID, true)
}

func (s *RouteService) Unpublish(ctx context.Context, actor Actor, routeID uuid.UUID) (*response_models.RouteView, error) {
	return s.setPublished(ctx, actor, routeID, false)
}

func (s *RouteService) setPublished(ctx context.Context, actor Actor, routeID uuid.UUID, published bool) (*response_models.RouteView, error) {
	op := "unpublish"
	if published {
		op = "publish"
	}
	return s.mutateView(ctx, op, actor, routeID, func(u routeUnit, route *db_models.Route) error {
		if route.Published == published {
			return nil
		}
		return u.routes.SetPublishedTx(ctx, route.ID, published)
	})
}

func (s *RouteService) Search(ctx context.Context, query string, limit int) ([]response_models.RouteView, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	routes, err := s.routeRepo.List(ctx, 0, limit,
		repositories.Equals{Column: "routes.published", Value: true},
		repositories.Contains{Column: "routes.name", Substring: strings.TrimSpace(query)})
	if err != nil {
		return nil, databaseError(s.logger, "search routes", err, zap.String("query", query))
	}
	return toRouteViews(routes), nil
}

func (s *RouteService) ListPublished(ctx context.Context, filter request_models.RouteFilter) ([]response_models.RouteView, error) {
	limit, err := normalizeLimit(filter.Limit)
	if err != nil {
		return nil, err
	}
	if filter.Offset < 0 {
		return nil, utils.ErrInvalidInput
	}
	if (filter.MinBudget != nil && filter.MinBudget.IsNegative()) ||
		(filter.MaxBudget != nil && filter.MaxBudget.IsNegative()) {
		return nil, utils.ErrInvalidInput
	}

	criteria := []repositories.Criterion{
		repositories.Equals{Column: "routes.published", Value: true},
		repositories.Range{
			Column:        "routes.total_budget",
			Min:           filter.MinBudget,
			Max:           filter.MaxBudget,
			UnknownPasses: true,
		},
		repositories.HasStopOfType{Types: filter.Types},
	}
	if filter.DestinationID != nil {
		criteria = append(criteria, repositories.Equals{Column: "routes.destination_id", Value: *filter.DestinationID})
	}

	routes, err := s.routeRepo.List(ctx, filter.Offset, limit, criteria...)
	if err != nil {
		return nil, databaseError(s.logger, "list published routes", err)
	}
	return toRouteViews(routes), nil
}

func (s *RouteService) ListMine(ctx context.Context, actor Actor) ([]response_models.RouteView, error) {
	if !actor.valid() {
		return nil, utils.ErrUnauthorized
	}
	routes, err := s.routeRepo.List(ctx, 0, -1, repositories.Equals{Column: "routes.owner_id", Value: actor.ID})
	if err != nil {
		return nil, databaseError(s.logger, "list own routes", err, zap.String("actor_id", actor.ID.String()))
	}
	return toRouteViews(routes), nil
}

func (s *RouteService) ListByTrip(ctx context.Context, actor Actor, tripID uuid.UUID) ([]response_models.RouteView, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, databaseError(s.logger, "find trip", err, zap.String("trip_id", tripID.String()))
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.UserID != actor.ID {
		return nil, utils.ErrForbidden
	}

	routes, err := s.routeRepo.List(ctx, 0, -1, repositories.Equals{Column: "routes.trip_id", Value: tripID})
	if err != nil {
		return nil, databaseError(s.logger, "list trip routes", err, zap.String("trip_id", tripID.String()))
	}
	return toRouteViews(routes), nil
}

func (s *RouteService) replaceStops(ctx context.Context, u routeUnit, route *db_models.Route, inputs []request_models.StopInput) error {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.AttractionID)
	}
	if err := s.checkAttractions(ctx, u, route.DestinationID, ids); err != nil {
		return err
	}

	if err := u.routes.DeleteStopsTx(ctx, route.ID); err != nil {
		return err
	}

	stops := make([]db_models.RouteStop, 0, len(inputs))
	for _, in := range inputs {
		stops = append(stops, db_models.RouteStop{
			RouteID:      route.ID,
			AttractionID: in.AttractionID,
			Position:     in.Position,
		})
	}
	if err := u.routes.InsertStopsTx(ctx, stops); err != nil {
		return err
	}

	return s.recomputeBudget(ctx, u, route.ID)
}

// recomputeBudget rebuilds total_budget from every current stop. A null
// price counts as zero and a route without stops has no budget.
func (s *RouteService) recomputeBudget(ctx context.Context, u routeUnit, routeID uuid.UUID) error {
	prices, err := u.routes.StopPrices(ctx, routeID)
	if err != nil {
		return err
	}
	return u.routes.SetTotalBudgetTx(ctx, routeID, SumPrices(prices))
}

// SumPrices totals stop prices. It returns an invalid NullDecimal for an
// empty list.
func SumPrices(prices []decimal.NullDecimal) decimal.NullDecimal {
	if len(prices) == 0 {
		return decimal.NullDecimal{}
	}
	total := decimal.Zero
	for _, p := range prices {
		if p.Valid {
			total = total.Add(p.Decimal)
		}
	}
	return decimal.NewNullDecimal(total)
}

// checkAttractions requires every id to name an attraction of destinationID.
func (s *RouteService) checkAttractions(ctx context.Context, u routeUnit, destinationID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	lookup := make([]uuid.UUID, 0, len(unique))
	for id := range unique {
		lookup = append(lookup, id)
	}

	attractions, err := u.attractions.FindByIDs(ctx, lookup)
	if err != nil {
		return err
	}
	if len(attractions) != len(lookup) {
		return utils.ErrInvalidReference
	}
	for _, a := range attractions {
		if a.DestinationID != destinationID {
			return utils.ErrInvalidReference
		}
	}
	return nil
}

func (s *RouteService) checkExistingStops(ctx context.Context, u routeUnit, route *db_models.Route) error {
	ids, err := u.routes.StopAttractionIDs(ctx, route.ID)
	if err != nil {
		return err
	}
	return s.checkAttractions(ctx, u, route.DestinationID, ids)
}

func (s *RouteService) checkTrip(ctx context.Context, u routeUnit, actor Actor, tripID uuid.UUID) error {
	trip, err := u.trips.FindByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip == nil || trip.UserID != actor.ID {
		return utils.ErrInvalidReference
	}
	return nil
}

func normalizeLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return defaultRouteLimit, nil
	case limit < 0 || limit > maxRouteLimit:
		return 0, utils.ErrInvalidPageSize
	default:
		return limit, nil
	}
}
