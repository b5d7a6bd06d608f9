package auth

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testKey(t *testing.T) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xAB}, 32))
}

func TestNewTokenCodec_KeyValidation(t *testing.T) {
	cases := []struct {
		name string
		key  string
		ttl  time.Duration
	}{
		{"empty key", "", time.Hour},
		{"not base64", "not-valid-base64!!!", time.Hour},
		{"short key", base64.StdEncoding.EncodeToString([]byte("too-short")), time.Hour},
		{"zero ttl", base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 32)), 0},
		{"negative ttl", base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 32)), -time.Minute},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTokenCodec(tc.key, tc.ttl); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, err := NewTokenCodec(testKey(t), time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	token, err := codec.Mint("usr-123", "alice@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	identity, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.Subject != "usr-123" {
		t.Fatalf("expected subject usr-123, got %q", identity.Subject)
	}
	if identity.Email != "alice@example.com" {
		t.Fatalf("expected email claim, got %q", identity.Email)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec, err := NewTokenCodec(testKey(t), time.Millisecond)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	token, err := codec.Mint("usr-123", "alice@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := codec.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec, err := NewTokenCodec(testKey(t), time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	token, err := codec.Mint("usr-123", "alice@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d segments", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := codec.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenCodec_WrongKey(t *testing.T) {
	codec, err := NewTokenCodec(testKey(t), time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	other, err := NewTokenCodec(base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xCD}, 32)), time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	token, err := codec.Mint("usr-123", "alice@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenCodec_RejectsUnsignedAlg(t *testing.T) {
	codec, err := NewTokenCodec(testKey(t), time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "usr-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := codec.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec, err := NewTokenCodec(testKey(t), time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	for _, bad := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := codec.Verify(bad); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", bad, err)
		}
	}
}

func TestTokenCodec_MissingSubject(t *testing.T) {
	codec, err := NewTokenCodec(testKey(t), time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	// Signed with the right key but carrying no sub claim.
	key, _ := base64.StdEncoding.DecodeString(testKey(t))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codec.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
