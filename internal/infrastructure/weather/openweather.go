// Package weather holds the origin weather provider client.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/skycast/weather-api/internal/core/domain"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherClient fetches current weather from the OpenWeather API.
// One synchronous GET per lookup; failures surface immediately, no retries.
type OpenWeatherClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewOpenWeatherClient(baseURL, apiKey string) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenWeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *OpenWeatherClient) Fetch(ctx context.Context, city string) (*domain.WeatherData, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweather status %d for city %q", resp.StatusCode, city)
	}

	var data domain.WeatherData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode openweather response: %w", err)
	}
	return &data, nil
}
