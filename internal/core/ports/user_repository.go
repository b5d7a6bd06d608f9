package ports

import (
	"context"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Implementations return domain.ErrUserNotFound on lookup misses and
// domain.ErrEmailTaken when a create collides on the unique email index.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserCache is an optional read-through cache in front of the repository.
// A cache miss is reported as domain.ErrUserNotFound.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
}
