package ports

import (
	"context"

	"github.com/skycast/weather-api/internal/core/domain"
)

// UserService covers the admin-only account management operations.
type UserService interface {
	List(ctx context.Context) ([]domain.PublicUser, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.PublicUser, error)
	Delete(ctx context.Context, id string) error
}
