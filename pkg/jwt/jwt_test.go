package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockcontrol-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate(testSecret, "user-1", "admin", "stockcontrol-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := jwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("otro-secreto", "user-1", "admin", "stockcontrol-test", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(testSecret, "user-1", "admin", "stockcontrol-test", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "stockcontrol-test", 60)
	assert.Error(t, err)
}
