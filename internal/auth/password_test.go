package auth_test

import (
	"bytes"
	"testing"

	"github.com/myfolio/server/internal/auth"
)

func TestHashThenVerify(t *testing.T) {
	salt, err := auth.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt failed: %v", err)
	}
	if len(salt) == 0 {
		t.Fatalf("expected non-empty salt")
	}

	hash, err := auth.HashPassword("p@ssw0rd1", salt)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if bytes.Contains(hash, []byte("p@ssw0rd1")) {
		t.Fatalf("hash must not contain the plaintext")
	}

	if !auth.VerifyPassword("p@ssw0rd1", salt, hash) {
		t.Fatalf("expected original password to verify")
	}
	if auth.VerifyPassword("p@ssw0rd2", salt, hash) {
		t.Fatalf("expected different password to fail verification")
	}
	if auth.VerifyPassword("", salt, hash) {
		t.Fatalf("expected empty password to fail verification")
	}
}

func TestSaltRegeneration(t *testing.T) {
	const password = "correct horse battery"

	// Re-hashing under fresh salts must keep verifying, and distinct salts
	// must not verify against each other's hashes.
	var salts [][]byte
	var hashes [][]byte
	for i := 0; i < 3; i++ {
		salt, err := auth.GenerateSalt()
		if err != nil {
			t.Fatalf("generate salt failed: %v", err)
		}
		hash, err := auth.HashPassword(password, salt)
		if err != nil {
			t.Fatalf("hash password failed: %v", err)
		}
		salts = append(salts, salt)
		hashes = append(hashes, hash)
	}

	if bytes.Equal(salts[0], salts[1]) {
		t.Fatalf("expected distinct salts across regenerations")
	}

	for i := range salts {
		if !auth.VerifyPassword(password, salts[i], hashes[i]) {
			t.Fatalf("hash %d failed to verify under its own salt", i)
		}
	}

	if auth.VerifyPassword(password, salts[0], hashes[1]) {
		t.Fatalf("hash must not verify under a foreign salt")
	}
}
