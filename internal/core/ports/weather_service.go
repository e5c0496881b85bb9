package ports

import (
	"context"

	"github.com/skycast/weather-api/internal/core/domain"
)

// WeatherService is the cache-aside retrieval orchestrator plus the two
// read-only ledger projections.
type WeatherService interface {
	// GetByCity returns current weather for city on behalf of userID.
	// Every successful call appends exactly one ledger record.
	GetByCity(ctx context.Context, city, userID string) (*domain.WeatherData, error)
	MyQueries(ctx context.Context, userID string) ([]*domain.WeatherQuery, error)
	AllQueries(ctx context.Context) ([]*domain.WeatherQueryWithUser, error)
}
