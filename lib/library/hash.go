package library

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 4096
	hashKeyLength  = 32
)

// SaltedHash derives the stored credential string from an email/password
// pair. The email acts as the salt, which binds the hash to the account: the
// same password on two accounts yields two different hashes. The output is
// stable, so it is used both to store credentials and to verify logins.
func SaltedHash(email, password string) string {
	key := pbkdf2.Key([]byte(password), []byte(email), hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key)
}
