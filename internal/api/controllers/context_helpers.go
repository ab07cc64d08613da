package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"travelplanner/internal/services"
	"travelplanner/pkg/middleware"
	"travelplanner/pkg/utils"
)

// requireActor reads the principal set by JWTAuthMiddleware. It writes a 401
// and returns false when none is present.
func requireActor(c *gin.Context) (services.Actor, bool) {
	actor := optionalActor(c)
	if actor == nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return services.Actor{}, false
	}
	return *actor, true
}

func optionalActor(c *gin.Context) *services.Actor {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil || id == uuid.Nil {
		return nil
	}
	return &services.Actor{ID: id, Role: c.GetString(middleware.ContextRole)}
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func tokenFrom(c *gin.Context) (string, time.Time) {
	expiresAt, ok := c.Get(middleware.ContextTokenExpires)
	until, _ := expiresAt.(time.Time)
	if !ok || until.IsZero() {
		until = time.Now().Add(time.Hour)
	}
	return c.GetString(middleware.ContextToken), until
}
