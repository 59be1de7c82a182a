package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims are the session token claims the admin surface accepts.
type AdminClaims struct {
	Iss     string `json:"iss"`
	AdminID int    `json:"admin_id"`
	jwt.RegisteredClaims
}

func VerifyAdminToken(tokenStr, secret string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
