package security

import (
	"sync"
	"testing"
	"time"

	"judge_gateway/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var initOnce sync.Once

func initTestJWT() {
	initOnce.Do(func() {
		config.AppConfig = &config.Config{
			JWTAccessSecret:  []byte("test-access-secret"),
			JWTRefreshSecret: []byte("test-refresh-secret"),
			AccessTokenTTL:   10 * time.Minute,
		}
		InitJWT()
	})
}

var testIdentity = Identity{Name: "A", Email: "a@x.com", Role: "admin"}

func TestGenerateAccessToken_CarriesIdentityAndExpiry(t *testing.T) {
	initTestJWT()

	tokenString, err := GenerateAccessToken(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwtauth.VerifyToken(AccessAuth, tokenString)
	require.NoError(t, err)

	id, err := IdentityFromClaims(token.PrivateClaims())
	require.NoError(t, err)
	assert.Equal(t, testIdentity, id)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), token.Expiration(), 5*time.Second)
}

func TestGenerateRefreshToken_HasNoExpiry(t *testing.T) {
	initTestJWT()

	tokenString, err := GenerateRefreshToken(testIdentity)
	require.NoError(t, err)

	id, err := VerifyRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, id)

	token, err := jwtauth.VerifyToken(RefreshAuth, tokenString)
	require.NoError(t, err)
	assert.True(t, token.Expiration().IsZero())
}

func TestTokenFamiliesAreNotInterchangeable(t *testing.T) {
	initTestJWT()

	accessToken, err := GenerateAccessToken(testIdentity)
	require.NoError(t, err)
	refreshToken, err := GenerateRefreshToken(testIdentity)
	require.NoError(t, err)

	// Access token against the refresh key fails.
	_, err = VerifyRefreshToken(accessToken)
	assert.Error(t, err)

	// Refresh token against the access key fails.
	_, err = jwtauth.VerifyToken(AccessAuth, refreshToken)
	assert.Error(t, err)
}

func TestExpiredAccessTokenIsRejected(t *testing.T) {
	initTestJWT()

	claims := jwt.MapClaims{
		"name":  testIdentity.Name,
		"email": testIdentity.Email,
		"role":  testIdentity.Role,
		"exp":   time.Now().Add(-time.Minute).Unix(),
		"iat":   time.Now().Add(-11 * time.Minute).Unix(),
	}
	_, tokenString, err := AccessAuth.Encode(claims)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(AccessAuth, tokenString)
	assert.Error(t, err)
}

func TestTamperedTokenIsRejected(t *testing.T) {
	initTestJWT()

	refreshToken, err := GenerateRefreshToken(testIdentity)
	require.NoError(t, err)

	_, err = VerifyRefreshToken(refreshToken + "x")
	assert.Error(t, err)
}

func TestIdentityFromClaims_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
	}{
		{name: "empty", claims: map[string]interface{}{}},
		{name: "missing role", claims: map[string]interface{}{"name": "A", "email": "a@x.com"}},
		{name: "wrong type", claims: map[string]interface{}{"name": "A", "email": "a@x.com", "role": 7}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := IdentityFromClaims(tt.claims)
			assert.Error(t, err)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("p")
	require.NoError(t, err)
	assert.NotEqual(t, "p", hash)
	assert.True(t, CheckPasswordHash("p", hash))
	assert.False(t, CheckPasswordHash("q", hash))
}
