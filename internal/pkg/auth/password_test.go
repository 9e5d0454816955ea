package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckLegacyPBKDF2Hash(t *testing.T) {
	// passlib pbkdf2_sha256 hash of "oldpassword"
	legacy := "$pbkdf2-sha256$29000$MDEyMzQ1Njc4OWFiY2RlZg$e4SmHOoyr/I9fgxoRClmbjD343/y9z5lWzVZnSwHOyU"

	assert.True(t, CheckPassword(legacy, "oldpassword"))
	assert.False(t, CheckPassword(legacy, "newpassword"))
}

func TestMalformedHashesVerifyToFalse(t *testing.T) {
	malformed := []string{
		"",
		"not-a-hash",
		"$pbkdf2-sha256$",
		"$pbkdf2-sha256$abc$salt$checksum",
		"$pbkdf2-sha256$0$MDEyMw$QUJDRA",
		"$pbkdf2-sha256$29000$!!!$QUJDRA",
		"$pbkdf2-sha256$29000$MDEyMw$!!!",
		"$pbkdf2-sha256$29000$MDEyMw",
		"$2a$backwards",
	}

	for _, hash := range malformed {
		assert.False(t, CheckPassword(hash, "whatever"), "hash %q", hash)
	}
}
