// internal/account/hasher.go
package account

import (
	"errors"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Hasher digests passwords for the device-local account store.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

var errDigestMismatch = errors.New("account: password digest mismatch")

// LegacyDigest is the non-cryptographic digest existing stored accounts
// were written with. It is basic obfuscation, not a security control, and
// stays the default only for compatibility with previously stored data.
type LegacyDigest struct{}

func (LegacyDigest) Hash(password string) (string, error) {
	var hash int32
	for _, r := range password {
		hash = (hash << 5) - hash + r
	}
	return strconv.FormatInt(int64(hash), 36), nil
}

func (d LegacyDigest) Compare(hash, password string) error {
	computed, _ := d.Hash(password)
	if computed != hash {
		return errDigestMismatch
	}
	return nil
}

// BcryptHasher is the real alternative for embedders that want actual
// password hashing.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
