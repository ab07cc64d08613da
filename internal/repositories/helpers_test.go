package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/infra"
	"travelplanner/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := infra.OpenSQLite(dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))

	t.Cleanup(func() { infra.CloseDB(db, zap.NewNop()) })
	return db
}

func seedAccount(t *testing.T, db *gorm.DB) *db_models.Account {
	t.Helper()
	account := &db_models.Account{
		Name:         "traveller",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         db_models.RoleUser,
	}
	require.NoError(t, NewAccountRepository(db).InsertTx(context.Background(), account))
	return account
}

func seedDestination(t *testing.T, db *gorm.DB, slots int, capacity *int) *db_models.Destination {
	t.Helper()
	destination := &db_models.Destination{
		Name:           "dest-" + uuid.NewString()[:8],
		AvailableSlots: slots,
		Capacity:       capacity,
	}
	require.NoError(t, NewDestinationRepository(db).InsertTx(context.Background(), destination))
	return destination
}

func seedAttraction(t *testing.T, db *gorm.DB, destinationID uuid.UUID, kind string, price *int64) *db_models.Attraction {
	t.Helper()
	attraction := &db_models.Attraction{
		DestinationID: destinationID,
		Name:          "attr-" + uuid.NewString()[:8],
		Type:          kind,
	}
	if price != nil {
		attraction.ApproximatePrice = decimal.NewNullDecimal(decimal.NewFromInt(*price))
	}
	require.NoError(t, NewAttractionRepository(db).CreateTx(context.Background(), attraction))
	return attraction
}

func price(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
