package ports

import (
	"context"

	"github.com/skycast/weather-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, *domain.PublicUser, error)
}
