package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const orderTokenIssuer = "art-shop"

// OrderClaims travel with a submitted order. Subject is the customer email.
type OrderClaims struct {
	Total float64 `json:"total"`
	jwt.RegisteredClaims
}

// SignOrderToken issues a short-lived HS256 token for one order submission.
func SignOrderToken(secret, subject string, total float64, ttl time.Duration, now time.Time) (string, error) {
	claims := OrderClaims{
		Total: total,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    orderTokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseOrderToken verifies signature, issuer and expiry.
func ParseOrderToken(secret, tokenString string) (*OrderClaims, error) {
	claims := &OrderClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(orderTokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid order token")
	}
	return claims, nil
}
