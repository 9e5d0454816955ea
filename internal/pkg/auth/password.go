package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// BcryptCost is the work factor for newly created hashes
const BcryptCost = 12

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a password against a stored hash. Besides bcrypt,
// hashes in the passlib pbkdf2-sha256 format left over from the previous
// deployment are accepted for verification. A malformed stored hash verifies
// to false, never to an error.
func CheckPassword(hashedPassword, password string) bool {
	if strings.HasPrefix(hashedPassword, "$pbkdf2-sha256$") {
		return checkLegacyPBKDF2(hashedPassword, password)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// checkLegacyPBKDF2 verifies a passlib-style hash:
// $pbkdf2-sha256$<rounds>$<salt>$<checksum>, salt and checksum in
// passlib's adapted base64 ('.' for '+', no padding).
func checkLegacyPBKDF2(hashedPassword, password string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 5 {
		return false
	}

	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds <= 0 {
		return false
	}

	salt, err := decodeAdaptedBase64(parts[3])
	if err != nil {
		return false
	}

	checksum, err := decodeAdaptedBase64(parts[4])
	if err != nil || len(checksum) == 0 {
		return false
	}

	derived := pbkdf2.Key([]byte(password), salt, rounds, len(checksum), sha256.New)
	return subtle.ConstantTimeCompare(derived, checksum) == 1
}

func decodeAdaptedBase64(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
