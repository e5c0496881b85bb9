// @title           Weather Query API
// @version         1.0
// @description     Role-gated weather lookup service with per-user query history.
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/skycast/weather-api/internal/api"
	"github.com/skycast/weather-api/internal/core/domain"
	"github.com/skycast/weather-api/internal/infrastructure/config"
	mongodb "github.com/skycast/weather-api/internal/infrastructure/db/mongo"
	redisdb "github.com/skycast/weather-api/internal/infrastructure/db/redis"
	"github.com/skycast/weather-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := seedAdmin(ctx, db, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// seedAdmin creates the bootstrap ADMIN account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and no account with that email exists yet.
func seedAdmin(ctx context.Context, db *mongo.Database, cfg *config.Config, log zerolog.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	repo := mongodb.NewUserRepository(db)
	if _, err := repo.FindByEmail(ctx, cfg.Admin.Email); err == nil {
		log.Info().Str("email", cfg.Admin.Email).Msg("admin user already exists")
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, &domain.User{
		Email:        cfg.Admin.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	log.Info().Str("email", cfg.Admin.Email).Msg("admin user created")
	return nil
}
