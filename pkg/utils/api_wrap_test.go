package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrRouteNotFound, http.StatusNotFound},
		{ErrStopNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", ErrBookingNotFound), http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrInsufficientCapacity, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrInvalidReference, http.StatusBadRequest},
		{ErrInvalidPageSize, http.StatusBadRequest},
		{ErrReviewAlreadyExists, http.StatusConflict},
		{ErrCapacityExceeded, http.StatusConflict},
		{ErrDatabaseError, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrForbidden))
	assert.True(t, IsDomainError(fmt.Errorf("%w: row 3", ErrInvalidInput)))
	assert.False(t, IsDomainError(ErrDatabaseError))
	assert.False(t, IsDomainError(errors.New("driver: bad connection")))
	assert.False(t, IsDomainError(nil))
}

func TestHandleServiceError_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(err error) (int, APIResponse) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("trace_id", "abc")
		HandleServiceError(c, err)

		var body APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body
	}

	code, body := run(ErrInsufficientCapacity)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, ErrInsufficientCapacity.Error(), body.Message)
	assert.Equal(t, "abc", body.TraceID)

	code, body = run(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestHandleServiceError_LogsThroughRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	run := func(err error) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("trace_id", "t-1")
		SetRequestLogger(c, zap.New(core).Named("http"))
		HandleServiceError(c, err)
	}

	run(ErrForbidden)
	assert.Zero(t, logs.Len())

	run(errors.New("disk full"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http", entry.LoggerName)
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "t-1", entry.ContextMap()["trace_id"])
}

func TestRequestLoggerFrom_FallsBackToGlobal(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, RequestLoggerFrom(c))
}
