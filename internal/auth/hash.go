// Package auth hashes paste passwords with argon2id, mixing in the
// process-wide salt resolved at startup.
package auth

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, sized for an interactive check on paste reads.
const (
	hashTime    = 1
	hashMemory  = 64 * 1024
	hashThreads = 4
	hashLength  = 32
)

// HashPassword derives a stable hash of password under salt.
func HashPassword(password, salt string) string {
	sum := argon2.IDKey([]byte(password), []byte(salt), hashTime, hashMemory, hashThreads, hashLength)
	return base64.RawStdEncoding.EncodeToString(sum)
}

// Verify reports whether password hashes to hash under salt. Comparison is
// constant time.
func Verify(password, salt, hash string) bool {
	derived := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(hash)) == 1
}
