package services

import "travelplanner/internal/models/db_models"

// CanMutateRoute is the single ownership rule for every route write: stop
// edits, full replace, publish, unpublish and delete.
func CanMutateRoute(actor Actor, route *db_models.Route) bool {
	return route != nil && actor.valid() && route.OwnerID == actor.ID
}

// CanViewRoute lets anyone read a published route and only the owner read a draft.
func CanViewRoute(actor *Actor, route *db_models.Route) bool {
	if route == nil {
		return false
	}
	if route.Published {
		return true
	}
	return actor != nil && CanMutateRoute(*actor, route)
}
