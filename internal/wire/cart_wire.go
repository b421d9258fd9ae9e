package wire

import (
	"art-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCart(r chi.Router, cartHandler *adaptor.CartHandler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Post("/items", cartHandler.AddItem)

		// {id} adalah id cart item, bukan nama produk
		r.Post("/items/{id}/increment", cartHandler.Increment)
		r.Post("/items/{id}/decrement", cartHandler.Decrement)
		r.Delete("/items/{id}", cartHandler.RemoveItem)
	})
}
