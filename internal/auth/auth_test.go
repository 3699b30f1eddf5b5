// server/internal/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	JwtSecret = []byte("test-secret")
	t.Cleanup(func() { JwtSecret = nil })

	tokenString, err := GenerateJWT("admin@example.com", "Admin", "superadmin", time.Hour)
	require.NoError(t, err)

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "superadmin", claims.Role)
}

func TestExpiredJWTRejected(t *testing.T) {
	JwtSecret = []byte("test-secret")
	t.Cleanup(func() { JwtSecret = nil })

	tokenString, err := GenerateJWT("admin@example.com", "Admin", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
