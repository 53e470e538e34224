package domain

import "time"

// User mirrors the record persisted in the external document store. The
// record is created exactly once, on the first successful signup for a phone
// number, and is never updated or deleted by this service.
type User struct {
	// ID is the opaque identifier assigned by the identity platform.
	ID          string
	PhoneNumber string
	// PINHash is a salted one-way hash of the 6-digit PIN. It is only ever
	// compared through a constant-time verification, never reversed.
	PINHash   string
	CreatedAt time.Time
}

// Identity is the identity platform's view of a user.
type Identity struct {
	ID          string
	PhoneNumber string
}
