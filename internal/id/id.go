// Package id generates the opaque identifiers used across the domain.
package id

import "github.com/google/uuid"

// New returns a new time-ordered identifier. UUIDv7 keeps insertion order
// roughly monotonic, which keeps creation-order listings stable.
func New() string {
	v7, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the entropy source does; fall back to v4.
		return uuid.NewString()
	}
	return v7.String()
}
