package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex encoded SHA-256 digest of password. The digest
// is unsalted, so equal passwords always hash to the same value and login can
// verify by recomputing it.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
