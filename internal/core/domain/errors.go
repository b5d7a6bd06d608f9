package domain

import "errors"

// ErrInvalidCredentials is returned for every login failure regardless of
// cause. A lookup miss and a password mismatch are deliberately
// indistinguishable so callers cannot probe which emails are registered.
var ErrInvalidCredentials = errors.New("invalid email or password")

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already in use")
var ErrAccessDenied = errors.New("access denied")
