package services

import (
	"github.com/google/uuid"
	"travelplanner/internal/models/db_models"
)

// Actor is the resolved principal performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == db_models.RoleAdmin }

func (a Actor) valid() bool { return a.ID != uuid.Nil }
