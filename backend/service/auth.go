package service

import (
	"errors"
	"time"

	"study-hub/backend/common"
	"study-hub/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func newClaims(user *model.User, expiry time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "study-hub",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
}

func GenerateToken(user *model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims(user, common.JWTExpiry))
	return token.SignedString([]byte(common.JWTSecret))
}

func GenerateRefreshToken(user *model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims(user, common.JWTRefreshExpiry))
	return token.SignedString([]byte(common.JWTRefreshSecret))
}

func validate(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func ValidateToken(tokenString string) (*Claims, error) {
	return validate(tokenString, common.JWTSecret)
}

func ValidateRefreshToken(tokenString string) (*Claims, error) {
	return validate(tokenString, common.JWTRefreshSecret)
}
