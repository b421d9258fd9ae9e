package adaptor

import (
	"net/http"

	"art-shop/internal/data/entity"
	"art-shop/internal/dto/request"
	"art-shop/internal/dto/response"
	"art-shop/internal/usecase"
	"art-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	store usecase.Storefront
	viewSync
}

func NewCartHandler(store usecase.Storefront, view *ViewPresenter, hub *Hub, log *zap.Logger) *CartHandler {
	return &CartHandler{
		store:    store,
		viewSync: viewSync{view: view, hub: hub, log: log.With(zap.String("handler", "cart"))},
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.cartResponse())
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req request.AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.store.AddToCart(r.Context(), entity.Product{
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
	})
	if err != nil {
		h.handleServiceError(w, r, err, "add to cart")
		return
	}

	h.respond(w, r, http.StatusCreated, "Item added to cart", response.CartItemToResponse(item))
}

// Increment handles POST /api/cart/items/{id}/increment
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	if err := h.store.IncreaseQuantity(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, r, err, "increase quantity")
		return
	}
	h.respond(w, r, http.StatusOK, "Cart updated", h.cartResponse())
}

// Decrement handles POST /api/cart/items/{id}/decrement
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DecreaseQuantity(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, r, err, "decrease quantity")
		return
	}
	h.respond(w, r, http.StatusOK, "Cart updated", h.cartResponse())
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveFromCart(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, r, err, "remove from cart")
		return
	}
	h.respond(w, r, http.StatusOK, "Cart updated", h.cartResponse())
}

func (h *CartHandler) cartResponse() response.CartResponse {
	state := h.store.Snapshot()
	return response.CartToResponse(state.Items, state.Totals.Subtotal)
}
