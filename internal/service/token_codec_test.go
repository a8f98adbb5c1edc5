package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestCodec(t *testing.T, secret string, ttl time.Duration) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(TokenConfig{Secret: secret, TTL: ttl})
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return codec
}

func TestTokenCodec_IssueDecode(t *testing.T) {
	codec := newTestCodec(t, "secret", 0)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	codec.now = func() time.Time { return fixed }

	token, claims, err := codec.Issue("a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(fixed.Add(120 * time.Hour)) {
		t.Fatalf("expected default ttl 120h, got exp %v", claims.ExpiresAt.Time)
	}

	decoded, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Email != "a@example.com" {
		t.Fatalf("unexpected email %q", decoded.Email)
	}
	if decoded.IssuedAt.Unix() != fixed.Unix() {
		t.Fatalf("unexpected iat %v", decoded.IssuedAt)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := newTestCodec(t, "secret", time.Hour)
	start := time.Now()
	codec.now = func() time.Time { return start }
	token, _, err := codec.Issue("a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec.now = func() time.Time { return start.Add(time.Hour + time.Second) }
	if _, err := codec.Decode(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_RejectsForgedAndMalformed(t *testing.T) {
	codec := newTestCodec(t, "secret", time.Hour)
	other := newTestCodec(t, "other-secret", time.Hour)

	forged, _, err := other.Issue("a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := codec.Decode(forged); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}

	for _, tok := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if _, err := codec.Decode(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", tok, err)
		}
	}
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	codec := newTestCodec(t, "secret", time.Hour)
	now := time.Now()
	claims := SessionClaims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Decode(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for HS512, got %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := codec.Decode(unsigned); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for alg none, got %v", err)
	}
}

func TestTokenCodec_RequiresClaims(t *testing.T) {
	codec := newTestCodec(t, "secret", time.Hour)
	now := time.Now()

	noExp, err := codec.Encode(SessionClaims{
		Email:            "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Decode(noExp); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without exp, got %v", err)
	}

	noEmail, err := codec.Encode(SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Decode(noEmail); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without email, got %v", err)
	}
}

func TestNewTokenCodec_RejectsEmptySecret(t *testing.T) {
	if _, err := NewTokenCodec(TokenConfig{Secret: " "}); err == nil {
		t.Fatalf("expected error on empty secret")
	}
}
