package wire

import (
	"art-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStorefront(r chi.Router, storefrontHandler *adaptor.StorefrontHandler, liveHandler *adaptor.LiveHandler) {
	r.Get("/api/storefront", storefrontHandler.GetState)

	// websocket, pushes the view after every event
	r.Get("/api/live", liveHandler.Connect)
}
