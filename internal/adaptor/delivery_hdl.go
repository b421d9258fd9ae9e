package adaptor

import (
	"net/http"

	"art-shop/internal/data/entity"
	"art-shop/internal/dto/request"
	"art-shop/internal/dto/response"
	"art-shop/internal/usecase"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

type DeliveryHandler struct {
	store usecase.Storefront
	viewSync
}

func NewDeliveryHandler(store usecase.Storefront, view *ViewPresenter, hub *Hub, log *zap.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		store:    store,
		viewSync: viewSync{view: view, hub: hub, log: log.With(zap.String("handler", "delivery"))},
	}
}

// GetDelivery handles GET /api/delivery
func (h *DeliveryHandler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", response.DeliveryToResponse(h.store.Snapshot().Delivery))
}

// SaveDelivery handles PUT /api/delivery
func (h *DeliveryHandler) SaveDelivery(w http.ResponseWriter, r *http.Request) {
	var req request.DeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	delivery := entity.Delivery(req.Delivery)
	if err := h.store.SaveDeliveryChoice(r.Context(), delivery); err != nil {
		h.handleServiceError(w, r, err, "save delivery preference")
		return
	}

	h.respond(w, r, http.StatusOK, "Delivery preference saved", response.DeliveryToResponse(delivery))
}
