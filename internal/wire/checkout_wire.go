package wire

import (
	"art-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCheckout(r chi.Router, checkoutHandler *adaptor.CheckoutHandler) {
	r.Route("/api/checkout", func(r chi.Router) {
		// POST /api/checkout - open checkout (login + non-empty cart required)
		r.Post("/", checkoutHandler.Proceed)

		// GET /api/checkout/summary?delivery=express - re-price for a delivery method
		r.Get("/summary", checkoutHandler.Summary)

		r.Post("/orders", checkoutHandler.PlaceOrder)
		r.Delete("/orders/pending", checkoutHandler.CancelPending)
		r.Post("/confirmation/close", checkoutHandler.CloseConfirmation)
	})
}
