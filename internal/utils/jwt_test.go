package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT("segredo", "abc-123", "Maria", "USER", "maria@example.com", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT("segredo", token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", claims.UserID)
	assert.Equal(t, "Maria", claims.Nome)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "todo token precisa de jti para a revogação")
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseJWTSegredoErrado(t *testing.T) {
	token, err := SignJWT("segredo", "abc-123", "Maria", "USER", "maria@example.com", 60)
	require.NoError(t, err)

	_, err = ParseJWT("outro-segredo", token)
	assert.Error(t, err)
}

func TestParseJWTExpirado(t *testing.T) {
	token, err := SignJWT("segredo", "abc-123", "Maria", "USER", "maria@example.com", -5)
	require.NoError(t, err)

	_, err = ParseJWT("segredo", token)
	assert.Error(t, err)
}

func TestParseJWTLixo(t *testing.T) {
	_, err := ParseJWT("segredo", "nao-e-um-jwt")
	assert.Error(t, err)
}
