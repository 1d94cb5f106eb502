package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("senha123")
	require.NoError(t, err)
	require.NotEqual(t, "senha123", hash)

	assert.True(t, CheckPassword(hash, "senha123"))
	assert.False(t, CheckPassword(hash, "senha124"))
	assert.False(t, CheckPassword("", "senha123"))
}
