package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/infra"
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/repositories"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db *gorm.DB

	accounts     AccountServiceInterface
	bookings     BookingServiceInterface
	routes       RouteServiceInterface
	trips        TripServiceInterface
	reviews      ReviewServiceInterface
	destinations DestinationServiceInterface
	attractions  AttractionServiceInterface
	catalog      CatalogImportServiceInterface

	revoked *mem.RevokedTokens
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := infra.OpenSQLite(dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))
	t.Cleanup(func() { infra.CloseDB(db, zap.NewNop()) })

	logger := zap.NewNop()
	tx := infra.NewTransactor(db, logger)

	destRepo := repositories.NewDestinationRepository(db)
	attractionRepo := repositories.NewAttractionRepository(db)
	routeRepo := repositories.NewRouteRepository(db)
	tripRepo := repositories.NewTripRepository(db)
	revoked := mem.NewRevokedTokens()

	return &testEnv{
		db:           db,
		accounts:     NewAccountService(repositories.NewAccountRepository(db), utils.NewJWTManager("test-secret", time.Hour), revoked, logger),
		bookings:     NewBookingService(tx, repositories.NewDestinationLedger(db), repositories.NewBookingRepository(db), destRepo, logger),
		routes:       NewRouteService(tx, routeRepo, attractionRepo, destRepo, tripRepo, logger),
		trips:        NewTripService(tx, tripRepo, destRepo, logger),
		reviews:      NewReviewService(repositories.NewReviewRepository(db), destRepo, logger),
		destinations: NewDestinationService(destRepo, logger),
		attractions:  NewAttractionService(attractionRepo, destRepo, logger),
		catalog:      NewCatalogImportService(tx, destRepo, attractionRepo, logger),
		revoked:      revoked,
	}
}

func (e *testEnv) actor(t *testing.T) Actor {
	t.Helper()
	account := &db_models.Account{
		Name:         "traveller",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         db_models.RoleUser,
	}
	require.NoError(t, repositories.NewAccountRepository(e.db).InsertTx(context.Background(), account))
	return Actor{ID: account.ID, Role: account.Role}
}

func (e *testEnv) destination(t *testing.T, slots int, capacity *int) *db_models.Destination {
	t.Helper()
	destination := &db_models.Destination{
		Name:           "dest-" + uuid.NewString()[:8],
		AvailableSlots: slots,
		Capacity:       capacity,
	}
	require.NoError(t, repositories.NewDestinationRepository(e.db).InsertTx(context.Background(), destination))
	return destination
}

// attraction seeds an attraction; a nil price stores NULL.
func (e *testEnv) attraction(t *testing.T, destinationID uuid.UUID, kind string, price *int64) *db_models.Attraction {
	t.Helper()
	attraction := &db_models.Attraction{
		DestinationID: destinationID,
		Name:          "attr-" + uuid.NewString()[:8],
		Type:          kind,
	}
	if price != nil {
		attraction.ApproximatePrice = decimal.NewNullDecimal(decimal.NewFromInt(*price))
	}
	require.NoError(t, repositories.NewAttractionRepository(e.db).CreateTx(context.Background(), attraction))
	return attraction
}

func (e *testEnv) availableSlots(t *testing.T, destinationID uuid.UUID) int {
	t.Helper()
	slots, err := repositories.NewDestinationLedger(e.db).AvailableSlots(context.Background(), destinationID)
	require.NoError(t, err)
	return slots
}

func price(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
