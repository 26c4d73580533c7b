package auth

import (
	"crypto/rand"

	"golang.org/x/crypto/bcrypt"
)

const saltLength = 16

// GenerateSalt returns a fresh random per-user salt. A new salt is drawn at
// registration and on every password change.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// HashPassword derives the stored hash from the plaintext and salt. The
// plaintext itself is never persisted.
func HashPassword(password string, salt []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(salted(password, salt), bcrypt.DefaultCost)
}

// VerifyPassword reports whether password matches the stored hash under the
// stored salt. Comparison happens inside bcrypt.
func VerifyPassword(password string, salt, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, salted(password, salt)) == nil
}

func salted(password string, salt []byte) []byte {
	return append([]byte(password), salt...)
}
