package ports

import (
	"context"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
)

// AddressInput carries the postal address fields of a create request.
type AddressInput struct {
	Line1    string
	Line2    string
	Line3    string
	Town     string
	County   string
	Postcode string
}

// CreateUserInput is the service-level payload for user creation. Password is
// plaintext here and must be discarded after hashing.
type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Address     AddressInput
}

// UserService owns the user profile lifecycle.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
