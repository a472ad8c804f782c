package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, 42, "ana", []string{"ADMIN", "USER"}, "catalog-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, []string{"ADMIN", "USER"}, claims.Roles)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "catalog-api", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(secret, 1, "ana", []string{"USER"}, "catalog-api", -1)
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(secret, 1, "ana", []string{"USER"}, "catalog-api", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", 1, "ana", nil, "x", 60)
	assert.Error(t, err)

	_, err = Parse("", "abc")
	assert.Error(t, err)
}
