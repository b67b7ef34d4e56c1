package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"
)

const (
	saltLength = 16
	keyLength  = 64

	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// HashPassword will generate a salted password record serialized as
// hex(salt):hex(key). The plaintext is never logged or stored.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", goerrors.New("password must not be empty", goerrors.CategoryValidation)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate password salt")
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to derive password key")
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// ComparePasswordAndHash will validate the given cleartext password against a
// stored record. Every failure, malformed record included, collapses into
// ErrMismatchedHashAndPassword so authentication fails safely instead of
// crashing the request.
func ComparePasswordAndHash(password, stored string) error {
	salt, key, ok := parsePasswordRecord(stored)
	if !ok {
		return ErrMismatchedHashAndPassword
	}

	// Re-derive with the stored salt and the stored key's length so records
	// written under different parameters keep verifying.
	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, len(key))
	if err != nil {
		return ErrMismatchedHashAndPassword
	}

	if subtle.ConstantTimeCompare(derived, key) != 1 {
		return ErrMismatchedHashAndPassword
	}

	return nil
}

func parsePasswordRecord(stored string) (salt, key []byte, ok bool) {
	saltHex, keyHex, found := strings.Cut(stored, ":")
	if !found || saltHex == "" || keyHex == "" {
		return nil, nil, false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, nil, false
	}

	key, err = hex.DecodeString(keyHex)
	if err != nil || len(key) == 0 {
		return nil, nil, false
	}

	return salt, key, true
}

// RandomPasswordHash is a temporary password
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}
