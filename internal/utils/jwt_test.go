// internal/utils/jwt_test.go
package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	m := NewJWTManager("test-secret", "freshcart", 7*24*time.Hour)

	token, err := m.GenerateJWT("ana@example.com", "Ana", "https://img.example.com/ana.png")
	require.NoError(t, err)

	claims, err := m.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, "freshcart", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", "freshcart", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.GenerateJWT("ana@example.com", "", "")
	require.NoError(t, err)

	_, err = m.ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("other-secret", "freshcart", time.Hour)
	verifier := NewJWTManager("test-secret", "freshcart", time.Hour)

	token, err := issuer.GenerateJWT("ana@example.com", "", "")
	require.NoError(t, err)

	_, err = verifier.ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsOtherAlgorithms(t *testing.T) {
	m := NewJWTManager("test-secret", "freshcart", time.Hour)

	claims := SessionClaims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.ValidateJWT(hs512)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ValidateJWT(none)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", "freshcart", time.Hour)

	_, err := m.ValidateJWT("not-a-token")
	assert.Error(t, err)
	_, err = m.ValidateJWT("")
	assert.Error(t, err)
}
