package wire

import (
	"art-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDelivery(r chi.Router, deliveryHandler *adaptor.DeliveryHandler) {
	r.Get("/api/delivery", deliveryHandler.GetDelivery)
	r.Put("/api/delivery", deliveryHandler.SaveDelivery)
}
