package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycast/weather-api/internal/api/metrics"
	"github.com/skycast/weather-api/internal/core/domain"
	"github.com/skycast/weather-api/internal/core/ports"
)

const cacheKeyPrefix = "weather:"

// WeatherService implements the cache-aside retrieval flow: cache lookup,
// origin fetch on miss, best-effort cache populate, then a mandatory ledger
// append. The cache is an optimization; the ledger is not, and a failed
// append fails the whole request.
type WeatherService struct {
	cache    ports.Cache
	provider ports.WeatherProvider
	queries  ports.QueryRepository
	users    ports.UserRepository
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewWeatherService(
	cache ports.Cache,
	provider ports.WeatherProvider,
	queries ports.QueryRepository,
	users ports.UserRepository,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *WeatherService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &WeatherService{
		cache:    cache,
		provider: provider,
		queries:  queries,
		users:    users,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// CacheKey computes the city-keyed cache key. Lookups are case-insensitive.
func CacheKey(city string) string {
	return cacheKeyPrefix + strings.ToLower(city)
}

func (s *WeatherService) GetByCity(ctx context.Context, city, userID string) (*domain.WeatherData, error) {
	key := CacheKey(city)

	var data *domain.WeatherData
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached domain.WeatherData
		if err := json.Unmarshal([]byte(raw), &cached); err != nil {
			// Corrupt entry: fall through to the origin as if it were a miss.
			s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		} else {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			s.logger.Debug().Str("city", city).Msg("cache hit")
			data = &cached
		}
	}

	if data == nil {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

		fetched, err := s.provider.Fetch(ctx, city)
		if err != nil {
			metrics.OriginFetchesTotal.WithLabelValues("error").Inc()
			s.logger.Error().Err(err).Str("city", city).Msg("origin weather fetch failed")
			return nil, fmt.Errorf("%w: %s", domain.ErrWeatherFetch, city)
		}
		metrics.OriginFetchesTotal.WithLabelValues("success").Inc()
		s.logger.Info().Str("city", city).Msg("fetched fresh weather data")
		data = fetched

		if serialized, err := json.Marshal(data); err == nil {
			s.cache.Set(ctx, key, string(serialized), s.cacheTTL)
		}
	}

	serialized, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("serialize weather payload: %w", err)
	}

	record := &domain.WeatherQuery{
		City:      city,
		Result:    string(serialized),
		UserID:    userID,
		QueriedAt: s.now().UTC(),
	}
	if _, err := s.queries.Append(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("city", city).Str("user_id", userID).Msg("ledger append failed")
		return nil, fmt.Errorf("%w: record query", domain.ErrWeatherFetch)
	}
	metrics.QueriesRecordedTotal.Inc()

	return data, nil
}

func (s *WeatherService) MyQueries(ctx context.Context, userID string) ([]*domain.WeatherQuery, error) {
	return s.queries.ListByUser(ctx, userID)
}

// AllQueries returns every ledger record newest first, joined with the
// querying account's email. Deleted accounts leave the email blank.
func (s *WeatherService) AllQueries(ctx context.Context) ([]*domain.WeatherQueryWithUser, error) {
	records, err := s.queries.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	out := make([]*domain.WeatherQueryWithUser, 0, len(records))
	for _, r := range records {
		out = append(out, &domain.WeatherQueryWithUser{
			WeatherQuery: *r,
			UserEmail:    emails[r.UserID],
		})
	}
	return out, nil
}
