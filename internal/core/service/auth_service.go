package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/api/metrics"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/auth"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/ports"
)

// AuthService exchanges credentials for signed bearer tokens.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	codec  *auth.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, codec *auth.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec, logger: logger}
}

// Login verifies the submitted credentials and mints a token for the account.
//
// An unknown email and a wrong password both fail with the same
// domain.ErrInvalidCredentials so the caller cannot tell which emails exist.
// Store failures other than a lookup miss are passed through untouched and
// never retried here; the boundary maps them to a generic 500.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Mint(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.LoginResult{Token: token, TokenType: "Bearer"}, nil
}
