package persistence

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt verifier for a plaintext password, using
// bcrypt's default cost since no legacy client compatibility constrains
// the scheme here.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt verifier
// produced by HashPassword.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
