package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

const (
	ContextUserID       = "user_id"
	ContextRole         = "Role"
	ContextToken        = "token"
	ContextTokenExpires = "token_expires_at"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func setPrincipal(c *gin.Context, token string, claims *utils.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextToken, token)
	if claims.ExpiresAt != nil {
		c.Set(ContextTokenExpires, claims.ExpiresAt.Time)
	} else {
		c.Set(ContextTokenExpires, time.Now().Add(time.Hour))
	}
}

func JWTAuthMiddleware(jwtManager *utils.JWTManager, revoked mem.RevokedTokenStore) gin.HandlerFunc {

	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		if revoked.IsRevoked(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, "Token is logged out")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		setPrincipal(c, tokenString, claims)
		c.Next()
	}
}

// OptionalJWTMiddleware resolves the actor when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalJWTMiddleware(jwtManager *utils.JWTManager, revoked mem.RevokedTokenStore) gin.HandlerFunc {

	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if ok && !revoked.IsRevoked(tokenString) {
			if claims, err := jwtManager.ValidateToken(tokenString); err == nil {
				setPrincipal(c, tokenString, claims)
			}
		}
		c.Next()
	}
}

func RoleMiddleware(requiredRole string) gin.HandlerFunc {

	return func(c *gin.Context) {
		role := c.GetString(ContextRole)

		if role != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
