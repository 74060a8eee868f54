package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("MonMotDePasse123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "MonMotDePasse123", hash)

	assert.True(t, VerifyPassword("MonMotDePasse123", hash))
	assert.False(t, VerifyPassword("MauvaisMotDePasse", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("peu-importe", "pas-un-hash-bcrypt"))
}
