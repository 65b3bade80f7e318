package utils

import (
	"fmt"
	"time"

	"gestaotemplate/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

func sign(claims Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func newClaims(user models.User, typ string, ttl time.Duration) Claims {
	now := time.Now()
	id, _ := GenerateRandomString(16)
	return Claims{
		UserID: user.ID,
		Email:  user.Email,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

// GenerateJWT issues an access token for user.
func GenerateJWT(user models.User, secret string, ttl time.Duration) (string, time.Time, error) {
	claims := newClaims(user, tokenTypeAccess, ttl)
	token, err := sign(claims, secret)
	return token, claims.ExpiresAt.Time, err
}

// GenerateRefreshToken generates a refresh token for a user
func GenerateRefreshToken(user models.User, secret string, ttl time.Duration) (string, error) {
	token, err := sign(newClaims(user, tokenTypeRefresh, ttl), secret)
	return token, err
}

func parse(tokenString, secret, typ string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("unexpected token type %q", claims.Type)
	}
	return claims, nil
}

// ParseJWT parses and validates an access token
func ParseJWT(tokenString, secret string) (*Claims, error) {
	return parse(tokenString, secret, tokenTypeAccess)
}

// ParseRefreshToken parses and validates a refresh token
func ParseRefreshToken(tokenString, secret string) (*Claims, error) {
	return parse(tokenString, secret, tokenTypeRefresh)
}
