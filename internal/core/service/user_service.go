package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/api/metrics"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/ports"
)

// UserService manages user profiles. The cache is optional; when nil every
// read goes straight to the repository.
type UserService struct {
	repo   ports.UserRepository
	cache  ports.UserCache
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.UserCache, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, hasher: hasher, logger: logger}
}

// Create hashes the submitted password and persists a new user. The unique
// email index is the source of truth for duplicates; a racing create surfaces
// as domain.ErrEmailTaken from the repository.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           newUserID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		Address: domain.Address{
			Line1:    input.Address.Line1,
			Line2:    input.Address.Line2,
			Line3:    input.Address.Line3,
			Town:     input.Address.Town,
			County:   input.Address.County,
			Postcode: input.Address.Postcode,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user created")
	return created, nil
}

// GetByID returns a user profile, consulting the cache first when one is
// configured. A repository miss is not cached.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return cached, nil
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			// Cache trouble should never fail the read; fall through to the repo.
			s.logger.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("user cache write failed")
		}
	}
	return user, nil
}

// newUserID mirrors the id scheme used across the public API: "usr-" + UUID.
func newUserID() string {
	return "usr-" + uuid.NewString()
}
