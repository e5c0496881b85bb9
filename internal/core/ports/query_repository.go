package ports

import (
	"context"

	"github.com/skycast/weather-api/internal/core/domain"
)

// QueryRepository persists the append-only weather-query ledger.
// Records are immutable once written; listings are ordered newest first.
type QueryRepository interface {
	Append(ctx context.Context, query *domain.WeatherQuery) (*domain.WeatherQuery, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.WeatherQuery, error)
	ListAll(ctx context.Context) ([]*domain.WeatherQuery, error)
}
