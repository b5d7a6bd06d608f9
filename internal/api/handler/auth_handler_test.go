package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/ports"
)

type stubAuthService struct {
	result *ports.LoginResult
	err    error

	gotEmail    string
	gotPassword string
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.LoginResult, error) {
	s.gotEmail = email
	s.gotPassword = password
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newLoginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{result: &ports.LoginResult{Token: "signed-token", TokenType: "Bearer"}}
	h := NewAuthHandler(svc)

	c, rec := newLoginContext(t, `{"email":"user@example.com","password":"password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotEmail != "user@example.com" || svc.gotPassword != "password123" {
		t.Fatalf("credentials not forwarded: %q / %q", svc.gotEmail, svc.gotPassword)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] != "signed-token" || resp["tokenType"] != "Bearer" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := newLoginContext(t, `{"email":"user@example.com","password":"badpassword"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed email", `{"email":"not-an-email","password":"password123"}`, "email"},
		{"blank password", `{"email":"user@example.com","password":""}`, "password"},
		{"missing email", `{"password":"password123"}`, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newLoginContext(t, tc.body)
			err := h.Login(c)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tc.field]; !ok {
				t.Fatalf("expected field %q in error map, got %v", tc.field, ve.Fields)
			}
		})
	}
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newLoginContext(t, `{not json`)
	err := h.Login(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
