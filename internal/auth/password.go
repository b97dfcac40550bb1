package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor for stored password hashes.
//
// Cost 10 takes ~60ms on a modern server — slow enough to make offline
// brute-forcing expensive, fast enough that login latency stays
// unnoticeable. bcrypt embeds the per-hash random salt and the cost in
// the output string, so verification needs no side-channel lookup.
const defaultCost = 10

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so the cost can be lowered in tests —
// cost 4 turns a ~60ms hash into well under a millisecond.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom
// (usually minimal) cost. Do not use in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is a self-contained string — salt and cost included — that is
// stored directly in the athlete record. The only failure modes are a
// password over bcrypt's 72-byte limit (rejected explicitly, since bcrypt
// would otherwise silently truncate) and entropy-source failure, which the
// caller treats as fatal.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
//
// A wrong password is not an error condition — it returns false, nothing
// else. bcrypt compares in constant time, so response timing leaks nothing
// about how close a guess was.
func (p *PasswordService) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
