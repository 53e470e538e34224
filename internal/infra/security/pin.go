package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPINHasher hashes PINs with bcrypt, the scheme the stored records use.
type BcryptPINHasher struct {
	cost int
}

// NewBcryptPINHasher builds a hasher with the provided cost. Out-of-range
// costs (including zero) fall back to the bcrypt default.
func NewBcryptPINHasher(cost int) *BcryptPINHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPINHasher{cost: cost}
}

// Hash generates a salted bcrypt hash for the provided PIN.
func (h *BcryptPINHasher) Hash(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

// Verify compares the provided PIN against a stored bcrypt hash. A mismatch
// is reported as (false, nil); malformed hashes surface as errors.
func (h *BcryptPINHasher) Verify(pin, encoded string) (bool, error) {
	if pin == "" || encoded == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(pin))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, fmt.Errorf("verify pin: %w", err)
}
