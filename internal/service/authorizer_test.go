package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func signIn(t *testing.T, f *authFixture, email string) string {
	t.Helper()
	ctx := context.Background()
	if err := f.issuer.RequestCode(ctx, email); err != nil {
		t.Fatalf("request code: %v", err)
	}
	token, err := f.verifier.Redeem(ctx, email, f.sender.code())
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	return token
}

func TestAuthorizer_AllowsVerifiedUser(t *testing.T) {
	f := newAuthFixture(t)
	token := signIn(t, f, "a@example.com")

	identity, err := f.gate.Authorize(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	user, _ := f.repo.MemoryUserRepository.GetByEmail(context.Background(), "a@example.com")
	if identity.Email != "a@example.com" || identity.UserID != user.ID {
		t.Fatalf("unexpected identity %+v", identity)
	}

	if _, err := f.gate.Authorize(context.Background(), "bearer "+token); err != nil {
		t.Fatalf("expected case-insensitive scheme, got %v", err)
	}
}

func TestAuthorizer_HeaderErrors(t *testing.T) {
	f := newAuthFixture(t)
	cases := []struct {
		header string
		want   error
	}{
		{"", ErrMissingCredentials},
		{"   ", ErrMissingCredentials},
		{"Basic dXNlcjpwYXNz", ErrMalformedCredentials},
		{"Bearer", ErrMalformedCredentials},
		{"Bearer a b", ErrMalformedCredentials},
		{"token-without-scheme", ErrMalformedCredentials},
	}
	for _, tc := range cases {
		if _, err := f.gate.Authorize(context.Background(), tc.header); !errors.Is(err, tc.want) {
			t.Fatalf("header %q: expected %v, got %v", tc.header, tc.want, err)
		}
	}
}

func TestAuthorizer_ExpiredAndForgedLookAlike(t *testing.T) {
	f := newAuthFixture(t)
	token := signIn(t, f, "a@example.com")

	f.codec.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, expiredErr := f.gate.Authorize(context.Background(), "Bearer "+token)

	f.codec.now = time.Now
	forger := newTestCodec(t, "not-the-secret", time.Hour)
	forged, _, _ := forger.Issue("a@example.com")
	_, forgedErr := f.gate.Authorize(context.Background(), "Bearer "+forged)

	if !errors.Is(expiredErr, ErrInvalidToken) || !errors.Is(forgedErr, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for both, got expired=%v forged=%v", expiredErr, forgedErr)
	}
	if expiredErr.Error() != forgedErr.Error() {
		t.Fatalf("expired and forged tokens must be indistinguishable")
	}
}

func TestAuthorizer_UnknownSubject(t *testing.T) {
	f := newAuthFixture(t)
	token, _, err := f.codec.Issue("ghost@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := f.gate.Authorize(context.Background(), "Bearer "+token); !errors.Is(err, ErrUnknownSubject) {
		t.Fatalf("expected ErrUnknownSubject, got %v", err)
	}
}

func TestAuthorizer_RePendingAccountIsRejected(t *testing.T) {
	f := newAuthFixture(t)
	token := signIn(t, f, "a@example.com")

	if err := f.issuer.RequestCode(context.Background(), "a@example.com"); err != nil {
		t.Fatalf("request code: %v", err)
	}
	if _, err := f.gate.Authorize(context.Background(), "Bearer "+token); !errors.Is(err, ErrUnverifiedAccount) {
		t.Fatalf("expected ErrUnverifiedAccount, got %v", err)
	}
}

func TestAuthorizer_StoreFailurePropagates(t *testing.T) {
	f := newAuthFixture(t)
	token := signIn(t, f, "a@example.com")
	boom := errors.New("db down")
	f.repo.lookupErr = boom

	if _, err := f.gate.Authorize(context.Background(), "Bearer "+token); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
