package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPasswordSHA256 returns the unsalted hex-encoded SHA-256 digest
// of the password. This is the legacy stored format: deterministic,
// so authentication can match on the digest itself in a single
// query. Known weakness, kept for compatibility with existing rows;
// new deployments should prefer the bcrypt scheme.
func HashPasswordSHA256(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// HashPasswordBcrypt returns a bcrypt hash using the given cost.
func HashPasswordBcrypt(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPasswordBcrypt safely compares a bcrypt hash and plain password.
func VerifyPasswordBcrypt(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
