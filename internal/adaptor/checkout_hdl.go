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

type CheckoutHandler struct {
	store usecase.Storefront
	viewSync
}

func NewCheckoutHandler(store usecase.Storefront, view *ViewPresenter, hub *Hub, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		store:    store,
		viewSync: viewSync{view: view, hub: hub, log: log.With(zap.String("handler", "checkout"))},
	}
}

// Proceed handles POST /api/checkout
func (h *CheckoutHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.ProceedToCheckout(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "proceed to checkout")
		return
	}
	h.respond(w, r, http.StatusOK, "success", response.SummaryToResponse(summary))
}

// Summary handles GET /api/checkout/summary?delivery=express
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	delivery := entity.Delivery(r.URL.Query().Get("delivery"))
	summary := h.store.UpdateCheckoutSummary(delivery)
	h.respond(w, r, http.StatusOK, "success", response.SummaryToResponse(summary))
}

// PlaceOrder handles POST /api/checkout/orders
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	confirmation, err := h.store.PlaceOrder(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "place order")
		return
	}

	h.respond(w, r, http.StatusCreated, "Order placed", response.ConfirmationToResponse(confirmation))
}

// CancelPending handles DELETE /api/checkout/orders/pending
func (h *CheckoutHandler) CancelPending(w http.ResponseWriter, r *http.Request) {
	if !h.store.CancelPendingOrder() {
		utils.ResponseNotFound(w, "No order is being processed")
		return
	}
	utils.ResponseSuccess(w, "Order cancellation requested", nil)
}

// CloseConfirmation handles POST /api/checkout/confirmation/close
func (h *CheckoutHandler) CloseConfirmation(w http.ResponseWriter, r *http.Request) {
	h.store.CloseConfirmation()
	h.respond(w, r, http.StatusOK, "success", nil)
}
