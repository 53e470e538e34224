package port

// PINHasher produces and verifies salted one-way hashes of PINs.
type PINHasher interface {
	Hash(pin string) (string, error)
	// Verify compares pin against a stored hash using a constant-time
	// comparison. A mismatch is (false, nil), not an error.
	Verify(pin, encoded string) (bool, error)
}
