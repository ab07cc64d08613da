package services

import (
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/pkg/utils"
)

func toRouteView(route *db_models.Route) response_models.RouteView {
	view := response_models.RouteView{
		ID:            route.ID.String(),
		Name:          route.Name,
		OwnerID:       route.OwnerID.String(),
		DestinationID: route.DestinationID.String(),
		TotalBudget:   route.TotalBudget,
		Published:     route.Published,
		CreatedAt:     utils.FormatUnixRFC3339(route.CreatedAt),
		Stops:         make([]response_models.RouteStopView, 0, len(route.Stops)),
	}
	if route.TripID != nil {
		tripID := route.TripID.String()
		view.TripID = &tripID
	}

	for _, stop := range route.Stops {
		view.Stops = append(view.Stops, response_models.RouteStopView{
			ID:       stop.ID.String(),
			Position: stop.Position,
			Attraction: response_models.AttractionSummary{
				ID:        stop.Attraction.ID.String(),
				Name:      stop.Attraction.Name,
				Type:      stop.Attraction.Type,
				Price:     stop.Attraction.ApproximatePrice,
				Latitude:  stop.Attraction.Latitude,
				Longitude: stop.Attraction.Longitude,
			},
		})
	}
	return view
}

func toRouteViews(routes []db_models.Route) []response_models.RouteView {
	out := make([]response_models.RouteView, 0, len(routes))
	for i := range routes {
		out = append(out, toRouteView(&routes[i]))
	}
	return out
}

func toDestinationResponse(d *db_models.Destination) response_models.DestinationResponse {
	return response_models.DestinationResponse{
		ID:             d.ID.String(),
		Name:           d.Name,
		Country:        d.Country,
		Climate:        d.Climate,
		Description:    d.Description,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		Capacity:       d.Capacity,
		AvailableSlots: d.AvailableSlots,
	}
}

func toAttractionResponse(a *db_models.Attraction) response_models.AttractionResponse {
	return response_models.AttractionResponse{
		ID:            a.ID.String(),
		DestinationID: a.DestinationID.String(),
		Name:          a.Name,
		Type:          a.Type,
		Description:   a.Description,
		Price:         a.ApproximatePrice,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
	}
}

func toAttractionResponses(attractions []db_models.Attraction) []response_models.AttractionResponse {
	out := make([]response_models.AttractionResponse, 0, len(attractions))
	for i := range attractions {
		out = append(out, toAttractionResponse(&attractions[i]))
	}
	return out
}
