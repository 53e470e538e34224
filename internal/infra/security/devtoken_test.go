package security

import (
	"errors"
	"testing"
	"time"
)

func TestDevTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewDevTokenIssuer("secret", "ann-dhan", time.Minute)

	token, err := issuer.Mint("uid-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	uid, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if uid != "uid-1" {
		t.Fatalf("expected uid-1, got %q", uid)
	}
}

func TestDevTokenIssuerRejectsEmptyIdentity(t *testing.T) {
	issuer := NewDevTokenIssuer("secret", "ann-dhan", time.Minute)

	if _, err := issuer.Mint(""); err == nil {
		t.Fatal("expected an error for an empty identity id")
	}
}

func TestDevTokenIssuerRejectsForeignToken(t *testing.T) {
	issuer := NewDevTokenIssuer("secret", "ann-dhan", time.Minute)
	other := NewDevTokenIssuer("different-secret", "ann-dhan", time.Minute)

	token, err := other.Mint("uid-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDevTokenIssuerRejectsGarbage(t *testing.T) {
	issuer := NewDevTokenIssuer("secret", "ann-dhan", time.Minute)

	for _, token := range []string{"", "   ", "not.a.jwt"} {
		if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestDevTokenIssuerRejectsExpiredToken(t *testing.T) {
	issuer := NewDevTokenIssuer("secret", "ann-dhan", time.Millisecond)

	token, err := issuer.Mint("uid-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := issuer.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}
