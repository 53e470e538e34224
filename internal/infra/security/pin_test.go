package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPINHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptPINHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "123456" {
		t.Fatal("hash must be non-empty and not the plain PIN")
	}

	ok, err := hasher.Verify("123456", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("correct PIN must verify")
	}

	ok, err = hasher.Verify("654321", hash)
	if err != nil {
		t.Fatalf("verify mismatch: %v", err)
	}
	if ok {
		t.Fatal("wrong PIN must not verify")
	}
}

func TestBcryptPINHasherEmptyInputs(t *testing.T) {
	hasher := NewBcryptPINHasher(bcrypt.MinCost)

	if ok, err := hasher.Verify("", "some-hash"); err != nil || ok {
		t.Fatalf("empty pin: got ok=%v err=%v", ok, err)
	}
	if ok, err := hasher.Verify("123456", ""); err != nil || ok {
		t.Fatalf("empty hash: got ok=%v err=%v", ok, err)
	}
}

func TestBcryptPINHasherMalformedHash(t *testing.T) {
	hasher := NewBcryptPINHasher(bcrypt.MinCost)

	if _, err := hasher.Verify("123456", "not-a-bcrypt-hash"); err == nil {
		t.Fatal("malformed hash must surface an error")
	}
}

func TestBcryptPINHasherCoercesInvalidCost(t *testing.T) {
	hasher := NewBcryptPINHasher(-1)

	hash, err := hasher.Hash("123456")
	if err != nil {
		t.Fatalf("hash with coerced cost: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
