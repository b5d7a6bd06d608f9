package ports

import "context"

// LoginResult is the outcome of a successful credential exchange.
type LoginResult struct {
	Token     string
	TokenType string
}

// AuthService authenticates credentials and issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// PasswordHasher is the one-way hashing capability used to store and check
// passwords. Verify must not leak timing information beyond what the
// underlying primitive leaks itself.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, storedHash string) bool
}
