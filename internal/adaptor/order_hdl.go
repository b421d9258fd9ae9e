package adaptor

import (
	"errors"
	"net/http"

	"art-shop/internal/dto/request"
	"art-shop/internal/dto/response"
	"art-shop/internal/usecase"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

// OrderHandler is the receiving side of order submission.
type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// Receive handles POST /api/orders
func (h *OrderHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var req request.OrderReceiveRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if claims, ok := utils.GetOrderClaims(r.Context()); ok && claims.Subject != req.Customer.Email {
		h.log.Warn("Order token subject mismatch",
			zap.String("subject", claims.Subject),
			zap.String("email", req.Customer.Email))
		utils.ResponseUnauthorized(w, "Token does not match order customer")
		return
	}

	order, err := h.service.Receive(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "receive order")
		return
	}

	utils.ResponseCreated(w, "Order received", response.ReceivedOrderToResponse(order))
}

// List handles GET /api/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list orders")
		return
	}

	receipts := make([]*response.OrderReceiptResponse, len(orders))
	for i, o := range orders {
		receipts[i] = response.ReceivedOrderToResponse(o)
	}
	utils.ResponseSuccess(w, "success", receipts)
}

func (h *OrderHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidationFailed):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
