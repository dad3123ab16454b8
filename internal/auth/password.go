package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the 10 rounds used when the existing password hashes
// were generated, so old and new hashes verify interchangeably.
const bcryptCost = 10

// HashPassword returns a salted bcrypt hash of the password. The salt is
// generated per call, so hashing the same password twice yields different
// outputs.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
// A malformed hash is treated as a mismatch, never an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
