package ports

import (
	"context"

	"github.com/skycast/weather-api/internal/core/domain"
)

// UserRepository defines the interface for credential-store persistence.
// Create must return domain.ErrEmailInUse on a uniqueness violation and
// lookups must return domain.ErrUserNotFound when no account matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
}
