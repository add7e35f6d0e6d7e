package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordSHA256(t *testing.T) {
	// Deterministic, hex-encoded, 64 chars. Known vector for "password".
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		HashPasswordSHA256("password"))
	assert.Equal(t, HashPasswordSHA256("pw1"), HashPasswordSHA256("pw1"))
	assert.Len(t, HashPasswordSHA256(""), 64)
}

func TestBcryptRoundTrip(t *testing.T) {
	hash, err := HashPasswordBcrypt("s3cret", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPasswordBcrypt(hash, "s3cret"))
	assert.False(t, VerifyPasswordBcrypt(hash, "wrong"))
}
