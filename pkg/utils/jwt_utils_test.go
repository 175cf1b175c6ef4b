package utils

import (
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_HonorsSecretSetAfterStartup(t *testing.T) {
	// Simulates the server flow where godotenv.Load runs in main, long
	// after this package is initialized.
	t.Setenv("SECRET_KEY", "operator-provided-secret")

	tokenString, err := GenerateAccessToken(7, "gymadmin")
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("operator-provided-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	// The built-in development fallback must not verify it.
	_, err = jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("dev-only-insecure-gym-crm-secret"), nil
	})
	assert.Error(t, err)
}

func TestValidateToken_RoundTripClaims(t *testing.T) {
	t.Setenv("SECRET_KEY", "round-trip-secret")

	tokenString, err := GenerateAccessToken(42, "gymadmin")
	require.NoError(t, err)

	claims, err := ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AdminID)
	assert.Equal(t, "gymadmin", claims.Username)
	assert.Equal(t, "gym-crm-backend", claims.Issuer)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "first-secret")
	tokenString, err := GenerateAccessToken(1, "gymadmin")
	require.NoError(t, err)

	t.Setenv("SECRET_KEY", "second-secret")
	_, err = ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_RejectsUnexpectedSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{AdminID: 1, Username: "gymadmin"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString)
	require.Error(t, err)
	assert.Contains(t, fmt.Sprintf("%v", err), "signing method")
}
