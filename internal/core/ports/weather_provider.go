package ports

import (
	"context"

	"github.com/skycast/weather-api/internal/core/domain"
)

// WeatherProvider is the origin data source for current weather. A single
// synchronous call is made per lookup; no retries.
type WeatherProvider interface {
	Fetch(ctx context.Context, city string) (*domain.WeatherData, error)
}
