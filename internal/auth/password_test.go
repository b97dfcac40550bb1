package auth

import (
	"strings"
	"testing"
)

// newTestPasswordService uses bcrypt cost 4 (the library minimum) so each
// hash takes well under a millisecond instead of ~60ms.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(4)
}

func TestHash_OutputIsNotPlaintext(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("my-secret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" || hash == "my-secret-password" {
		t.Fatalf("Hash() = %q, must be a non-empty value distinct from the plaintext", hash)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash)
	}
}

func TestHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	// The salt is random per hash, so two hashes of the same password
	// must differ.
	hash1, _ := ps.Hash("same-password")
	hash2, _ := ps.Hash("same-password")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password")
	}
}

func TestHash_RejectsPasswordOver72Bytes(t *testing.T) {
	ps := newTestPasswordService()

	_, err := ps.Hash(strings.Repeat("a", 73))
	if err == nil {
		t.Fatal("Hash() should reject passwords over 72 bytes")
	}
}

func TestVerify_CorrectPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !ps.Verify(hash, "secret1") {
		t.Error("Verify() = false for the correct password")
	}
}

func TestVerify_WrongPasswordReturnsFalse(t *testing.T) {
	ps := newTestPasswordService()

	hash, _ := ps.Hash("secret1")

	// A wrong password is a false, never a panic or error.
	if ps.Verify(hash, "secret2") {
		t.Error("Verify() = true for a wrong password")
	}
	if ps.Verify(hash, "") {
		t.Error("Verify() = true for an empty password")
	}
	if ps.Verify("not-a-bcrypt-hash", "secret1") {
		t.Error("Verify() = true for a malformed stored hash")
	}
}
