package wire

import (
	"art-shop/internal/adaptor"
	"art-shop/pkg/middleware"
	"art-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireOrder mounts the order receiver, so the storefront can be its own
// order backend. Guarded by the signed order token when a secret is set.
func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.OrderToken(config.Order.Secret, log))

		r.Post("/", orderHandler.Receive)
		r.Get("/", orderHandler.List)
	})
}
