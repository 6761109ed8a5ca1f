// Package crypt provides one-way password hashing and verification.
package crypt

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost keeps brute force expensive while staying well under
// interactive login latency.
const DefaultCost = 10

// Hasher hashes and verifies passwords using bcrypt. A per-call random salt
// is baked into the bcrypt output encoding.
type Hasher struct {
	cost int
}

// NewHasher creates a hasher with the given bcrypt cost factor.
// Out-of-range costs are clamped to the valid bcrypt range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash creates a salted bcrypt hash of the plaintext
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. It returns
// false for mismatches and for malformed hash input; it never propagates
// a fault.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
