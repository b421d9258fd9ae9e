package middleware

import (
	"net/http"
	"strings"

	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

// OrderToken guards the order receiver. Requests must carry a bearer token
// signed with the shared order secret. An empty secret turns the check off.
func OrderToken(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			// Format: "Bearer <jwt>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseOrderToken(secret, parts[1])
			if err != nil {
				logger.Warn("Rejected order token",
					zap.Error(err),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetOrderClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
