package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is one notch above the library default. Login is a rare
// operation compared to token verification, so the extra work factor is
// affordable.
const DefaultBcryptCost = 12

// BcryptHasher hashes and verifies passwords with bcrypt. It implements
// ports.PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher at the given cost, falling back to
// DefaultBcryptCost when cost is out of bcrypt's valid range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives a salted one-way hash from a plaintext password.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison is
// done entirely inside bcrypt, which is constant-time on the digest.
func (h *BcryptHasher) Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
