package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skycast/weather-api/internal/core/domain"
	"github.com/skycast/weather-api/internal/core/ports"
)

// UserService implements the admin-only account management operations.
// These are persistence pass-throughs; role checks happen in middleware.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*domain.PublicUser, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	updated, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("role", role).Msg("user role updated")
	pub := updated.Public()
	return &pub, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
