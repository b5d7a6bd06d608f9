package auth

import "github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"

// Identity is the authenticated caller established for a single request.
// It lives only in that request's context and is never shared or persisted.
type Identity struct {
	Subject string
	Email   string
}

// RequireOwner enforces the single authorization rule of the system: a caller
// may only act on resources owned by their own subject. A nil identity (no
// token, or an invalid one) is denied the same way as a mismatched one.
func RequireOwner(id *Identity, ownerID string) error {
	if id == nil || id.Subject != ownerID {
		return domain.ErrAccessDenied
	}
	return nil
}
