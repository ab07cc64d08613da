package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

func newAuthRouter(jwtManager *utils.JWTManager, revoked mem.RevokedTokenStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	whoami := func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	}
	r.GET("/private", JWTAuthMiddleware(jwtManager, revoked), whoami)
	r.GET("/public", OptionalJWTMiddleware(jwtManager, revoked), whoami)
	r.GET("/admin", JWTAuthMiddleware(jwtManager, revoked), RoleMiddleware("admin"), whoami)
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Hour)
	revoked := mem.NewRevokedTokens()
	r := newAuthRouter(jwtManager, revoked)

	userID := uuid.New()
	token, err := jwtManager.CreateToken(userID, "user")
	require.NoError(t, err)

	w := get(r, "/private", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "garbage").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", token).Code)

	revoked.Revoke(token, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", token).Code)
}

func TestOptionalJWTMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(jwtManager, mem.NewRevokedTokens())

	w := get(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "/public", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	adminID := uuid.New()
	token, err := jwtManager.CreateToken(adminID, "admin")
	require.NoError(t, err)
	w = get(r, "/public", token)
	assert.Equal(t, adminID.String(), w.Body.String())
	assert.Equal(t, http.StatusOK, get(r, "/admin", token).Code)
}

func TestTraceIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Body.String())
	assert.Equal(t, incoming, w.Header().Get(TraceIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}
