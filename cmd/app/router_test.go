package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"travelplanner/internal/api/controllers"
	"travelplanner/internal/config"
	"travelplanner/internal/infra"
	"travelplanner/internal/models/db_models"
	"travelplanner/internal/repositories"
	"travelplanner/internal/services"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := infra.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))
	t.Cleanup(func() { infra.CloseDB(db, zap.NewNop()) })

	logger := zap.NewNop()
	tx := infra.NewTransactor(db, logger)
	jwtManager := utils.NewJWTManager("router-test", time.Hour)
	revoked := mem.NewRevokedTokens()

	destRepo := repositories.NewDestinationRepository(db)
	attractionRepo := repositories.NewAttractionRepository(db)
	tripRepo := repositories.NewTripRepository(db)
	attractionService := services.NewAttractionService(attractionRepo, destRepo, logger)

	handlers := Handlers{
		Account:     controllers.NewAccountController(services.NewAccountService(repositories.NewAccountRepository(db), jwtManager, revoked, logger)),
		Destination: controllers.NewDestinationController(services.NewDestinationService(destRepo, logger), attractionService),
		Attraction:  controllers.NewAttractionController(attractionService),
		Booking:     controllers.NewBookingController(services.NewBookingService(tx, repositories.NewDestinationLedger(db), repositories.NewBookingRepository(db), destRepo, logger)),
		Route:       controllers.NewRouteController(services.NewRouteService(tx, repositories.NewRouteRepository(db), attractionRepo, destRepo, tripRepo, logger)),
		Trip:        controllers.NewTripController(services.NewTripService(tx, tripRepo, destRepo, logger)),
		Review:      controllers.NewReviewController(services.NewReviewService(repositories.NewReviewRepository(db), destRepo, logger)),
		Catalog:     controllers.NewCatalogController(services.NewCatalogImportService(tx, destRepo, attractionRepo, logger)),
	}

	router := ProvideRouter(config.Config{CORSAllowedOrigin: "*"}, logger, jwtManager, revoked, handlers)
	return &apiClient{t: t, router: router, db: db}
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

func (a *apiClient) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (a *apiClient) signUp(email string) string {
	a.t.Helper()
	code, _ := a.do(http.MethodPost, "/accounts/register", "", map[string]string{
		"display_name": "Traveller",
		"email":        email,
		"password":     "secret-pass",
	})
	require.Equal(a.t, http.StatusCreated, code)

	code, resp := a.do(http.MethodPost, "/accounts/login", "", map[string]string{
		"email":    email,
		"password": "secret-pass",
	})
	require.Equal(a.t, http.StatusOK, code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(resp.Data, &login))
	return login.Token
}

func (a *apiClient) seedDestination(slots int) *db_models.Destination {
	a.t.Helper()
	destination := &db_models.Destination{Name: "dest-" + uuid.NewString()[:8], AvailableSlots: slots, Capacity: &slots}
	require.NoError(a.t, repositories.NewDestinationRepository(a.db).InsertTx(context.Background(), destination))
	return destination
}

func TestAPI_BookingFlow(t *testing.T) {
	api := newAPIClient(t)
	token := api.signUp("booker@example.com")
	destination := api.seedDestination(5)

	code, resp := api.do(http.MethodPost, "/bookings", token, map[string]interface{}{
		"destination_id": destination.ID.String(),
		"slots":          3,
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	assert.NotEmpty(t, resp.TraceID)

	var booking struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &booking))

	code, resp = api.do(http.MethodPost, "/bookings", token, map[string]interface{}{
		"destination_id": destination.ID.String(),
		"slots":          3,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, utils.ErrInsufficientCapacity.Error(), resp.Message)

	code, _ = api.do(http.MethodPost, "/bookings", "", map[string]interface{}{
		"destination_id": destination.ID.String(),
		"slots":          1,
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.do(http.MethodDelete, "/bookings/"+booking.ID, token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodDelete, "/bookings/"+booking.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = api.do(http.MethodGet, "/destinations/"+destination.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, code)
	var dest struct {
		AvailableSlots int `json:"available_slots"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dest))
	assert.Equal(t, 5, dest.AvailableSlots)
}

func TestAPI_RouteVisibilityAndOwnership(t *testing.T) {
	api := newAPIClient(t)
	owner := api.signUp("owner@example.com")
	stranger := api.signUp("stranger@example.com")
	destination := api.seedDestination(0)

	code, resp := api.do(http.MethodPost, "/routes", owner, map[string]interface{}{
		"name":           "Riverside",
		"destination_id": destination.ID.String(),
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var route struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &route))

	code, _ = api.do(http.MethodGet, "/routes/"+route.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = api.do(http.MethodGet, "/routes/"+route.ID, owner, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodPost, "/routes/"+route.ID+"/publish", stranger, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.do(http.MethodPost, "/routes/"+route.ID+"/publish", owner, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodGet, "/routes/"+route.ID, "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, resp = api.do(http.MethodGet, "/routes?max_budget=10&types=museum,park", "", nil)
	require.Equal(t, http.StatusOK, code)
	var listed []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &listed))
	assert.Empty(t, listed, "route without stops has no museum or park")

	code, _ = api.do(http.MethodGet, "/routes?max_budget=lots", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = api.do(http.MethodGet, "/routes/search?q=river&limit=500", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPI_LogoutRevokesToken(t *testing.T) {
	api := newAPIClient(t)
	token := api.signUp("leaver@example.com")

	code, _ := api.do(http.MethodGet, "/accounts/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodPost, "/accounts/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodGet, "/accounts/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPI_CatalogImportRequiresAdmin(t *testing.T) {
	api := newAPIClient(t)
	token := api.signUp("plain@example.com")

	code, _ := api.do(http.MethodPost, "/admin/catalog/import", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = api.do(http.MethodPost, "/admin/catalog/import", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
