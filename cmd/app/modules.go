package main

import (
	"go.uber.org/fx"
	"travelplanner/cmd/fx/account_fx"
	"travelplanner/cmd/fx/attraction_fx"
	"travelplanner/cmd/fx/booking_fx"
	"travelplanner/cmd/fx/catalog_fx"
	"travelplanner/cmd/fx/config_fx"
	"travelplanner/cmd/fx/db_fx"
	"travelplanner/cmd/fx/destination_fx"
	"travelplanner/cmd/fx/logger_fx"
	"travelplanner/cmd/fx/memcache_fx"
	"travelplanner/cmd/fx/review_fx"
	"travelplanner/cmd/fx/route_fx"
	"travelplanner/cmd/fx/trip_fx"
)

// infraModules is what every command needs: configuration, logging and the
// database.
var infraModules = fx.Options(
	config_fx.Module,
	logger_fx.Module,
	db_fx.Module,
)

var domainModules = fx.Options(
	memcache_fx.Module,
	account_fx.Module,
	destination_fx.Module,
	attraction_fx.Module,
	booking_fx.Module,
	route_fx.Module,
	trip_fx.Module,
	review_fx.Module,
	catalog_fx.Module,
)
