package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/skillsync-team/meeting-service/internal/domain/entities"
)

// UserRepository defines the interface for participant-directory lookups
type UserRepository interface {
	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}
