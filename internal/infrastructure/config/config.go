package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=1h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Weather WeatherConfig
	Admin   AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=weather_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type WeatherConfig struct {
	APIKey   string        `env:"OPENWEATHER_API_KEY"`
	BaseURL  string        `env:"OPENWEATHER_BASE_URL, default=https://api.openweathermap.org/data/2.5/weather"`
	CacheTTL time.Duration `env:"WEATHER_CACHE_TTL,    default=600s"`
}

// AdminConfig optionally seeds a bootstrap ADMIN account at startup.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the production contract: the signing secret and the
// origin API key are externally supplied, never baked in.
func (c *Config) validate() error {
	if c.Env != "production" {
		return nil
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required in production")
	}
	if c.Weather.APIKey == "" {
		return errors.New("config: OPENWEATHER_API_KEY is required in production")
	}
	return nil
}
