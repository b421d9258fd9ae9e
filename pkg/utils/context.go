package utils

import "context"

type contextKey string

const orderClaimsKey contextKey = "order_claims"

func SetOrderClaims(ctx context.Context, claims *OrderClaims) context.Context {
	return context.WithValue(ctx, orderClaimsKey, claims)
}

// GetOrderClaims returns the verified token claims, if the request had any.
func GetOrderClaims(ctx context.Context) (*OrderClaims, bool) {
	claims, ok := ctx.Value(orderClaimsKey).(*OrderClaims)
	return claims, ok
}
