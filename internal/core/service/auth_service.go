package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skycast/weather-api/internal/api/metrics"
	"github.com/skycast/weather-api/internal/core/domain"
	"github.com/skycast/weather-api/internal/core/ports"
	"github.com/skycast/weather-api/internal/core/token"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	issuer *token.Issuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, logger: logger}
}

// Register hashes the password and inserts the account. A uniqueness
// violation surfaces as domain.ErrEmailInUse; any other store failure
// propagates unchanged so it is not mistaken for a client error.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.PublicUser, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("role", role).Msg("user registered")

	pub := created.Public()
	return &pub, nil
}

// Login verifies the credentials and issues a token bound to the account id
// and role. Callers must not reveal whether the email or the password was
// wrong; the unknown-email case is collapsed at the API boundary.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.PublicUser, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.logger.Warn().Str("email", email).Msg("login failed: user not found")
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.logger.Warn().Str("email", email).Msg("login failed: invalid credentials")
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", email).Msg("login successful")

	pub := user.Public()
	return tok, &pub, nil
}
