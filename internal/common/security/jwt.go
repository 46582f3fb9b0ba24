package security

import (
	"errors"
	"time"

	"judge_gateway/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Access and refresh tokens are signed with distinct keys so that one
// family is never accepted where the other is expected.
var (
	AccessAuth  *jwtauth.JWTAuth
	RefreshAuth *jwtauth.JWTAuth
)

// Identity is the set of claims carried by both token families.
type Identity struct {
	Name  string
	Email string
	Role  string
}

func InitJWT() {
	AccessAuth = jwtauth.New("HS256", config.AppConfig.JWTAccessSecret, nil)
	RefreshAuth = jwtauth.New("HS256", config.AppConfig.JWTRefreshSecret, nil)
}

// GenerateAccessToken issues a short-lived access token for the identity.
func GenerateAccessToken(id Identity) (string, error) {
	claims := jwt.MapClaims{
		"name":  id.Name,
		"email": id.Email,
		"role":  id.Role,
		"exp":   time.Now().Add(config.AppConfig.AccessTokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	_, tokenString, err := AccessAuth.Encode(claims)
	return tokenString, err
}

// GenerateRefreshToken issues a refresh token with no expiry claim.
// Validity is governed by the revocation registry, not by time.
func GenerateRefreshToken(id Identity) (string, error) {
	claims := jwt.MapClaims{
		"name":  id.Name,
		"email": id.Email,
		"role":  id.Role,
		"iat":   time.Now().Unix(),
	}
	_, tokenString, err := RefreshAuth.Encode(claims)
	return tokenString, err
}

// VerifyRefreshToken checks the signature against the refresh key and
// returns the embedded identity. Access tokens fail here.
func VerifyRefreshToken(tokenString string) (Identity, error) {
	token, err := jwtauth.VerifyToken(RefreshAuth, tokenString)
	if err != nil {
		return Identity{}, err
	}
	return IdentityFromClaims(token.PrivateClaims())
}

// IdentityFromClaims extracts the identity fields from a decoded claim set.
func IdentityFromClaims(claims map[string]interface{}) (Identity, error) {
	name, ok := claims["name"].(string)
	if !ok {
		return Identity{}, errors.New("name claim is missing or not a string")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return Identity{}, errors.New("email claim is missing or not a string")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Identity{}, errors.New("role claim is missing or not a string")
	}
	return Identity{Name: name, Email: email, Role: role}, nil
}
