package domain

import (
	"errors"
	"time"
)

var ErrWeatherFetch = errors.New("weather fetch failed")

// WeatherData is the subset of the OpenWeather current-weather payload the
// service exposes to clients and serializes into cache and ledger entries.
type WeatherData struct {
	Name    string             `json:"name"`
	Main    WeatherMain        `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Wind    WeatherWind        `json:"wind"`
}

type WeatherMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
}

type WeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type WeatherWind struct {
	Speed float64 `json:"speed"`
}

// WeatherQuery is one append-only ledger record. City is stored exactly as
// the client requested it; Result holds the serialized payload that was
// returned for that request.
type WeatherQuery struct {
	ID        string    `json:"id"`
	City      string    `json:"city"`
	Result    string    `json:"result"`
	UserID    string    `json:"user_id"`
	QueriedAt time.Time `json:"queried_at"`
}

// WeatherQueryWithUser joins a ledger record with the querying account's
// email for the admin-facing listing.
type WeatherQueryWithUser struct {
	WeatherQuery
	UserEmail string `json:"user_email,omitempty"`
}
