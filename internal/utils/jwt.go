package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JWTClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type AccessToken struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	TokenType string `json:"token_type"`
}

// GenerateAccessToken signs a token identifying the acting user. Every
// mutating operation takes its user ID from this token, never from storage.
func GenerateAccessToken(userID primitive.ObjectID, secretKey string) (*AccessToken, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(JWTAccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    AppName,
			Subject:   userID.Hex(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, err
	}

	return &AccessToken{
		Token:     signed,
		ExpiresIn: int64(JWTAccessTokenTTL.Seconds()),
		TokenType: "Bearer",
	}, nil
}

// ValidateAccessToken parses a signed token and returns the user ID it
// identifies.
func ValidateAccessToken(tokenString, secretKey string) (primitive.ObjectID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, errors.New(ErrInvalidToken)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return primitive.NilObjectID, errors.New(ErrInvalidToken)
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, errors.New(ErrInvalidToken)
	}

	return userID, nil
}
