package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes an account password for storage in the
// users table.  The cost factor comes from the BCRYPT_COST env var via
// config; registration is the only write path.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// Login goes through this comparison; the plain password is never
// persisted or logged anywhere.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
