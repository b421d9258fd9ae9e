package adaptor

import (
	"net/http"

	"art-shop/internal/data/entity"
	"art-shop/internal/dto/response"
	"art-shop/internal/usecase"
	"art-shop/pkg/utils"
)

type StorefrontHandler struct {
	store usecase.Storefront
	view  *ViewPresenter
}

type storefrontResponse struct {
	View       ViewState                 `json:"view"`
	Delivery   response.DeliveryResponse `json:"delivery"`
	OrderState entity.OrderState         `json:"order_state"`
}

func NewStorefrontHandler(store usecase.Storefront, view *ViewPresenter) *StorefrontHandler {
	return &StorefrontHandler{store: store, view: view}
}

// GetState handles GET /api/storefront. Queued notifications stay queued.
func (h *StorefrontHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state := h.store.Snapshot()
	utils.ResponseSuccess(w, "success", storefrontResponse{
		View:       h.view.Snapshot(),
		Delivery:   response.DeliveryToResponse(state.Delivery),
		OrderState: state.OrderState,
	})
}
