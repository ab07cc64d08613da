package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"travelplanner/internal/repositories"
	"travelplanner/pkg/utils"
)

// writeWorkbook builds an xlsx file with one sheet per entry in sheets.
func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func importFile(t *testing.T, env *testEnv, path string) error {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = env.catalog.ImportWorkbook(context.Background(), bytes.NewReader(data))
	return err
}

func TestCatalogImport_CreatesThenUpdates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	path := writeWorkbook(t, map[string][][]interface{}{
		SheetDestinations: {
			{"Name", "Country", "Climate", "Capacity", "Latitude", "Longitude", "Description"},
			{"Da Lat", "Vietnam", "temperate", 40, 11.94, 108.44, "Highlands"},
			{"Hoi An", "Vietnam", "tropical", "", 15.88, 108.33, ""},
		},
		SheetAttractions: {
			{"destination", "NAME", "type", "price", "lat", "lng"},
			{"da lat", "Crazy House", "architecture", "2.50", 11.93, 108.43},
			{"Hoi An", "Japanese Bridge", "landmark", "", 15.877, 108.326},
		},
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	summary, err := env.catalog.ImportWorkbook(ctx, bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.DestinationsCreated)
	assert.Equal(t, 2, summary.AttractionsCreated)

	destRepo := repositories.NewDestinationRepository(env.db)
	dalat, err := destRepo.FindByName(ctx, "Da Lat")
	require.NoError(t, err)
	require.NotNil(t, dalat)
	assert.Equal(t, 40, dalat.AvailableSlots)
	require.NotNil(t, dalat.Capacity)
	assert.Equal(t, 40, *dalat.Capacity)

	hoian, err := destRepo.FindByName(ctx, "hoi an")
	require.NoError(t, err)
	require.NotNil(t, hoian)
	assert.Nil(t, hoian.Capacity)

	attractions, err := env.attractions.ListByDestination(ctx, dalat.ID)
	require.NoError(t, err)
	require.Len(t, attractions, 1)
	assert.Equal(t, "2.5", attractions[0].Price.Decimal.String())

	// A booking between imports must survive the profile update.
	user := env.actor(t)
	_, err = env.bookings.Create(ctx, user, dalat.ID, 10)
	require.NoError(t, err)

	again, err := env.catalog.ImportWorkbook(ctx, bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, again.DestinationsUpdated)
	assert.Equal(t, 2, again.AttractionsUpdated)
	assert.Zero(t, again.DestinationsCreated)
	assert.Equal(t, 30, env.availableSlots(t, dalat.ID))
}

func TestCatalogImport_UnknownDestinationRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)

	path := writeWorkbook(t, map[string][][]interface{}{
		SheetDestinations: {
			{"name", "capacity"},
			{"Sa Pa", 10},
		},
		SheetAttractions: {
			{"destination", "name"},
			{"Atlantis", "Lost temple"},
		},
	})

	err := importFile(t, env, path)
	assert.ErrorIs(t, err, utils.ErrInvalidReference)

	found, err := repositories.NewDestinationRepository(env.db).FindByName(context.Background(), "Sa Pa")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCatalogImport_CapacityMustCoverBookedSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	destRepo := repositories.NewDestinationRepository(env.db)

	withCapacity := func(capacity int) string {
		return writeWorkbook(t, map[string][][]interface{}{
			SheetDestinations: {
				{"name", "capacity"},
				{"Nha Trang", capacity},
			},
		})
	}

	require.NoError(t, importFile(t, env, withCapacity(10)))
	dest, err := destRepo.FindByName(ctx, "Nha Trang")
	require.NoError(t, err)
	require.NotNil(t, dest)

	user := env.actor(t)
	booking, err := env.bookings.Create(ctx, user, dest.ID, 5)
	require.NoError(t, err)
	require.Equal(t, 5, env.availableSlots(t, dest.ID))

	for _, capacity := range []int{5, 9} {
		err := importFile(t, env, withCapacity(capacity))
		assert.ErrorIs(t, err, utils.ErrInvalidInput, "capacity %d", capacity)
	}

	unchanged, err := destRepo.FindByName(ctx, "Nha Trang")
	require.NoError(t, err)
	require.NotNil(t, unchanged.Capacity)
	assert.Equal(t, 10, *unchanged.Capacity)

	// Exactly free plus booked is enough.
	require.NoError(t, importFile(t, env, withCapacity(10)))

	require.NoError(t, env.bookings.Cancel(ctx, user, uuid.MustParse(booking.ID)))
	assert.Equal(t, 10, env.availableSlots(t, dest.ID))
}

func TestCatalogImport_RejectsBadCells(t *testing.T) {
	env := newTestEnv(t)

	path := writeWorkbook(t, map[string][][]interface{}{
		SheetDestinations: {
			{"name", "capacity"},
			{"Hue", "many"},
		},
	})
	assert.ErrorIs(t, importFile(t, env, path), utils.ErrInvalidInput)

	path = writeWorkbook(t, map[string][][]interface{}{
		SheetDestinations: {{"country"}, {"Vietnam"}},
	})
	assert.ErrorIs(t, importFile(t, env, path), utils.ErrInvalidInput)

	_, err := env.catalog.ImportWorkbook(context.Background(), bytes.NewReader([]byte("not a workbook")))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestHeaderIndex(t *testing.T) {
	headers := []string{" Name ", "LAT", "Approximate_Price"}
	assert.Equal(t, 0, headerIndex(headers, "name"))
	assert.Equal(t, 1, headerIndex(headers, "latitude", "lat"))
	assert.Equal(t, 2, headerIndex(headers, "price", "approximate_price"))
	assert.Equal(t, -1, headerIndex(headers, "capacity"))
}
