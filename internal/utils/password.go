package utils

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/blossom-focus/blossom-api/internal/constants"
)

// TruncatePassword caps the password at bcrypt's 72-byte input limit. The cut
// operates on encoded bytes and backs off so it never splits a multi-byte
// UTF-8 sequence; hashing and verification both go through it so long
// passwords behave consistently on both paths.
func TruncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) <= constants.BcryptMaxPasswordBytes {
		return b
	}

	cut := constants.BcryptMaxPasswordBytes
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return b[:cut]
}

// HashPassword hashes a password with bcrypt after truncation.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(TruncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), TruncatePassword(password)) == nil
}
