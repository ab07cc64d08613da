package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/infra"
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/repositories"
	"travelplanner/pkg/utils"
)

const (
	SheetDestinations = "Destinations"
	SheetAttractions  = "Attractions"
)

// CatalogImportServiceInterface loads destinations and attractions from an
// xlsx workbook in one transaction.
type CatalogImportServiceInterface interface {
	ImportWorkbook(ctx context.Context, r io.Reader) (*response_models.CatalogImportSummary, error)
}

type CatalogImportService struct {
	tx             infra.Transactor
	destRepo       repositories.DestinationRepository
	attractionRepo repositories.AttractionRepository
	logger         *zap.Logger
}

func NewCatalogImportService(
	tx infra.Transactor,
	destRepo repositories.DestinationRepository,
	attractionRepo repositories.AttractionRepository,
	logger *zap.Logger,
) CatalogImportServiceInterface {
	return &CatalogImportService{
		tx:             tx,
		destRepo:       destRepo,
		attractionRepo: attractionRepo,
		logger:         logger.Named("catalog_import"),
	}
}

type destinationRow struct {
	line        int
	name        string
	country     string
	climate     string
	description string
	latitude    float64
	longitude   float64
	capacity    *int
}

type attractionRow struct {
	line        int
	destination string
	name        string
	kind        string
	description string
	latitude    float64
	longitude   float64
	price       decimal.NullDecimal
}

func (c *CatalogImportService) ImportWorkbook(ctx context.Context, r io.Reader) (*response_models.CatalogImportSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", utils.ErrInvalidInput, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			c.logger.Warn("close workbook", zap.Error(err))
		}
	}()

	destRows, err := readDestinationRows(f)
	if err != nil {
		return nil, err
	}
	attrRows, err := readAttractionRows(f)
	if err != nil {
		return nil, err
	}

	summary := &response_models.CatalogImportSummary{}
	err = c.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		destinations := c.destRepo.WithTx(tx)
		attractions := c.attractionRepo.WithTx(tx)

		byName := make(map[string]*db_models.Destination, len(destRows))
		for _, row := range destRows {
			dest, created, err := upsertDestination(ctx, destinations, row)
			if err != nil {
				return err
			}
			if created {
				summary.DestinationsCreated++
			} else {
				summary.DestinationsUpdated++
			}
			byName[strings.ToLower(row.name)] = dest
		}

		for _, row := range attrRows {
			dest, ok := byName[strings.ToLower(row.destination)]
			if !ok {
				found, err := destinations.FindByName(ctx, row.destination)
				if err != nil {
					return err
				}
				if found == nil {
					return fmt.Errorf("%w: %s row %d: unknown destination %q",
						utils.ErrInvalidReference, SheetAttractions, row.line, row.destination)
				}
				dest = found
				byName[strings.ToLower(row.destination)] = dest
			}

			created, err := upsertAttraction(ctx, attractions, dest.ID, row)
			if err != nil {
				return err
			}
			if created {
				summary.AttractionsCreated++
			} else {
				summary.AttractionsUpdated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, databaseError(c.logger, "import catalog", err)
	}

	c.logger.Info("catalog imported",
		zap.Int("destinations_created", summary.DestinationsCreated),
		zap.Int("destinations_updated", summary.DestinationsUpdated),
		zap.Int("attractions_created", summary.AttractionsCreated),
		zap.Int("attractions_updated", summary.AttractionsUpdated))
	return summary, nil
}

// New destinations start fully available. Existing ones keep their counter;
// only the profile and the ceiling change. A new ceiling must cover the free
// slots plus every slot still held by a booking, otherwise those bookings
// could never be released.
func upsertDestination(ctx context.Context, repo repositories.DestinationRepository, row destinationRow) (*db_models.Destination, bool, error) {
	existing, err := repo.FindByNameForUpdate(ctx, row.name)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		dest := &db_models.Destination{
			Name:        row.name,
			Country:     row.country,
			Climate:     row.climate,
			Description: row.description,
			Latitude:    row.latitude,
			Longitude:   row.longitude,
			Capacity:    row.capacity,
		}
		if row.capacity != nil {
			dest.AvailableSlots = *row.capacity
		}
		if err := repo.InsertTx(ctx, dest); err != nil {
			return nil, false, err
		}
		return dest, true, nil
	}

	if row.capacity != nil {
		reserved, err := repo.ReservedSlots(ctx, existing.ID)
		if err != nil {
			return nil, false, err
		}
		if required := existing.AvailableSlots + reserved; *row.capacity < required {
			return nil, false, fmt.Errorf("%w: %s row %d: capacity %d is below %d available plus %d booked slots",
				utils.ErrInvalidInput, SheetDestinations, row.line, *row.capacity, existing.AvailableSlots, reserved)
		}
	}
	existing.Country = row.country
	existing.Climate = row.climate
	existing.Description = row.description
	existing.Latitude = row.latitude
	existing.Longitude = row.longitude
	existing.Capacity = row.capacity
	if err := repo.UpdateProfileTx(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func upsertAttraction(ctx context.Context, repo repositories.AttractionRepository, destinationID uuid.UUID, row attractionRow) (bool, error) {
	existing, err := repo.FindByDestinationAndName(ctx, destinationID, row.name)
	if err != nil {
		return false, err
	}

	attraction := &db_models.Attraction{
		DestinationID:    destinationID,
		Name:             row.name,
		Type:             row.kind,
		Description:      row.description,
		Latitude:         row.latitude,
		Longitude:        row.longitude,
		ApproximatePrice: row.price,
	}
	if existing == nil {
		return true, repo.CreateTx(ctx, attraction)
	}
	attraction.ID = existing.ID
	return false, repo.UpdateTx(ctx, attraction)
}

// Either sheet may be absent; attractions can then reference destinations
// already in the catalog.
func readDestinationRows(f *excelize.File) ([]destinationRow, error) {
	if idx, _ := f.GetSheetIndex(SheetDestinations); idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(SheetDestinations)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", utils.ErrInvalidInput, SheetDestinations, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	col := columns{
		"name":        headerIndex(headers, "name", "destination"),
		"country":     headerIndex(headers, "country"),
		"climate":     headerIndex(headers, "climate"),
		"description": headerIndex(headers, "description"),
		"latitude":    headerIndex(headers, "latitude", "lat"),
		"longitude":   headerIndex(headers, "longitude", "lng", "lon"),
		"capacity":    headerIndex(headers, "capacity", "slots"),
	}
	if col["name"] < 0 {
		return nil, fmt.Errorf("%w: sheet %q has no name column", utils.ErrInvalidInput, SheetDestinations)
	}

	out := make([]destinationRow, 0, len(rows)-1)
	for i, r := range rows[1:] {
		line := i + 2
		name := col.get(r, "name")
		if name == "" {
			continue
		}

		row := destinationRow{
			line:        line,
			name:        name,
			country:     col.get(r, "country"),
			climate:     col.get(r, "climate"),
			description: col.get(r, "description"),
		}
		if row.latitude, err = col.float(r, "latitude"); err != nil {
			return nil, rowError(SheetDestinations, line, "latitude", err)
		}
		if row.longitude, err = col.float(r, "longitude"); err != nil {
			return nil, rowError(SheetDestinations, line, "longitude", err)
		}
		if raw := col.get(r, "capacity"); raw != "" {
			capacity, err := strconv.Atoi(raw)
			if err != nil || capacity < 0 {
				return nil, rowError(SheetDestinations, line, "capacity", fmt.Errorf("%q is not a non-negative integer", raw))
			}
			row.capacity = &capacity
		}
		out = append(out, row)
	}
	return out, nil
}

func readAttractionRows(f *excelize.File) ([]attractionRow, error) {
	if idx, _ := f.GetSheetIndex(SheetAttractions); idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(SheetAttractions)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", utils.ErrInvalidInput, SheetAttractions, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	col := columns{
		"destination": headerIndex(headers, "destination"),
		"name":        headerIndex(headers, "name", "attraction"),
		"type":        headerIndex(headers, "type", "category"),
		"description": headerIndex(headers, "description"),
		"latitude":    headerIndex(headers, "latitude", "lat"),
		"longitude":   headerIndex(headers, "longitude", "lng", "lon"),
		"price":       headerIndex(headers, "price", "approximate_price"),
	}
	if col["destination"] < 0 || col["name"] < 0 {
		return nil, fmt.Errorf("%w: sheet %q needs destination and name columns", utils.ErrInvalidInput, SheetAttractions)
	}

	out := make([]attractionRow, 0, len(rows)-1)
	for i, r := range rows[1:] {
		line := i + 2
		name := col.get(r, "name")
		if name == "" {
			continue
		}

		row := attractionRow{
			line:        line,
			destination: col.get(r, "destination"),
			name:        name,
			kind:        col.get(r, "type"),
			description: col.get(r, "description"),
		}
		if row.destination == "" {
			return nil, rowError(SheetAttractions, line, "destination", fmt.Errorf("missing"))
		}
		if row.latitude, err = col.float(r, "latitude"); err != nil {
			return nil, rowError(SheetAttractions, line, "latitude", err)
		}
		if row.longitude, err = col.float(r, "longitude"); err != nil {
			return nil, rowError(SheetAttractions, line, "longitude", err)
		}
		if raw := col.get(r, "price"); raw != "" {
			price, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
			if err != nil || price.IsNegative() {
				return nil, rowError(SheetAttractions, line, "price", fmt.Errorf("%q is not a non-negative amount", raw))
			}
			row.price = decimal.NewNullDecimal(price)
		}
		out = append(out, row)
	}
	return out, nil
}

// columns maps a logical field to its header position, -1 when absent.
type columns map[string]int

func (c columns) get(row []string, field string) string {
	idx, ok := c[field]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (c columns) float(row []string, field string) (float64, error) {
	raw := c.get(row, field)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func headerIndex(headers []string, candidates ...string) int {
	for i, h := range headers {
		hl := strings.ToLower(strings.TrimSpace(h))
		for _, c := range candidates {
			if hl == strings.ToLower(c) {
				return i
			}
		}
	}
	return -1
}

func rowError(sheet string, line int, field string, err error) error {
	return fmt.Errorf("%w: %s row %d %s: %v", utils.ErrInvalidInput, sheet, line, field, err)
}
