package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func renderError(t *testing.T, log zerolog.Logger, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/usr-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(log)(err, c)
	return rec
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	rec := renderError(t, zerolog.Nop().Level(zerolog.InfoLevel), errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "connection refused") {
		t.Fatalf("internal detail leaked to client: %s", body)
	}
	if !strings.Contains(body, "An unexpected error occurred") {
		t.Fatalf("expected generic detail, got %s", body)
	}
}

func TestErrorHandler_DebugDetailOnlyAtDebugLevel(t *testing.T) {
	rec := renderError(t, zerolog.Nop().Level(zerolog.DebugLevel), errors.New("pq: connection refused"))

	if !strings.Contains(rec.Body.String(), "debugMessage") {
		t.Fatalf("expected debugMessage at debug level, got %s", rec.Body.String())
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := renderError(t, zerolog.Nop(), echo.NewHTTPError(http.StatusUnauthorized, "Authentication is required to access this resource"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unauthenticated") {
		t.Fatalf("expected unauthenticated problem type, got %s", rec.Body.String())
	}
}
