package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/api/handler"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
)

const problemTypeBase = "https://api.eaglebank.com/problems/"

// problemDocument is the error envelope rendered on every 4xx/5xx response,
// following the RFC 7807 field names plus a timestamp.
type problemDocument struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Detail    string            `json:"detail"`
	Instance  string            `json:"instance"`
	Timestamp time.Time         `json:"timestamp"`
	Errors    map[string]string `json:"errors,omitempty"`
	Debug     string            `json:"debugMessage,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with a field-level error map.
//   - Logs unexpected errors internally; the client sees a generic 500, with
//     the underlying message exposed only when debug logging is enabled.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		doc, code := resolveProblem(err, log, c)
		doc.Instance = c.Request().RequestURI
		doc.Timestamp = time.Now().UTC()

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, doc)
	}
}

func resolveProblem(err error, log zerolog.Logger, c echo.Context) (problemDocument, int) {
	// Field-level validation failures carry their own error map.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return problemDocument{
			Type:   problemTypeBase + "validation-error",
			Title:  "Validation Failed",
			Detail: "One or more fields are invalid.",
			Errors: ve.Fields,
		}, http.StatusBadRequest
	}

	// Echo's own errors: bind failures, 404/405 from the router, middleware
	// rejections raised as echo.NewHTTPError.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return problemDocument{
			Type:   problemTypeBase + problemSlug(he.Code),
			Title:  http.StatusText(he.Code),
			Detail: fmt.Sprintf("%v", he.Message),
		}, he.Code
	}

	// Known domain errors map to deterministic problem documents. The
	// invalid-credentials detail is identical for every cause of failure.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return problemDocument{
			Type:   problemTypeBase + "invalid-credentials",
			Title:  "Invalid Credentials",
			Detail: "Invalid email or password",
		}, http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccessDenied):
		return problemDocument{
			Type:   problemTypeBase + "access-denied",
			Title:  "Access Denied",
			Detail: "You are not authorized to access this resource",
		}, http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound):
		return problemDocument{
			Type:   problemTypeBase + "user-not-found",
			Title:  "User Not Found",
			Detail: "User ID not found",
		}, http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return problemDocument{
			Type:   problemTypeBase + "email-already-in-use",
			Title:  "Email Already In Use",
			Detail: "The email address is already registered",
		}, http.StatusConflict
	}

	// Unexpected error: log the real cause, return a generic document.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	doc := problemDocument{
		Type:   problemTypeBase + "internal-error",
		Title:  "Internal Server Error",
		Detail: "An unexpected error occurred. Please try again later.",
	}
	if log.GetLevel() <= zerolog.DebugLevel {
		doc.Debug = err.Error()
	}
	return doc, http.StatusInternalServerError
}

func problemSlug(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "invalid-request-body"
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusNotFound:
		return "not-found"
	case http.StatusMethodNotAllowed:
		return "method-not-allowed"
	default:
		return "internal-error"
	}
}
