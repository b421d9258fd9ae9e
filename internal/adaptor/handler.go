package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"art-shop/internal/usecase"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Auth       *AuthHandler
	Cart       *CartHandler
	Delivery   *DeliveryHandler
	Checkout   *CheckoutHandler
	Order      *OrderHandler
	Storefront *StorefrontHandler
	Live       *LiveHandler
}

func NewHandler(service *usecase.Service, view *ViewPresenter, hub *Hub, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Storefront, view, hub, log),
		Cart:       NewCartHandler(service.Storefront, view, hub, log),
		Delivery:   NewDeliveryHandler(service.Storefront, view, hub, log),
		Checkout:   NewCheckoutHandler(service.Storefront, view, hub, log),
		Order:      NewOrderHandler(service.Order, log),
		Storefront: NewStorefrontHandler(service.Storefront, view),
		Live:       NewLiveHandler(hub, view, log),
	}
}

// eventResult is the data part of every storefront event response: the
// operation result plus the view after the event.
type eventResult struct {
	Result any       `json:"result,omitempty"`
	View   ViewState `json:"view"`
}

// viewSync is shared by handlers that drive storefront events. After each
// event it drains the presenter, pushes the view to live clients and writes
// the response.
type viewSync struct {
	view *ViewPresenter
	hub  *Hub
	log  *zap.Logger
}

func (s viewSync) respond(w http.ResponseWriter, r *http.Request, code int, message string, data any) {
	state := s.flush(r)
	utils.ResponseJSON(w, code, true, message, eventResult{Result: data, View: state}, nil)
}

// flush publishes the drained view to live clients. The returned view
// carries only the toasts of this request's event when the request has a
// note log, since another event may have drained the shared queue first.
func (s viewSync) flush(r *http.Request) ViewState {
	state := s.view.Flush()
	s.hub.Publish(state)

	if notes, ok := usecase.NotesFrom(r.Context()); ok {
		state.Notifications = nil
		for _, n := range notes {
			state.Notifications = append(state.Notifications, Notification{Message: n.Message, Severity: n.Severity})
		}
	}
	return state
}

// handleServiceError maps the error taxonomy to status codes
func (s viewSync) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	state := s.flush(r)

	code, message := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	} else {
		s.log.Warn(operation+" failed", zap.Error(err), zap.Int("status", code))
	}
	utils.ResponseJSON(w, code, false, message, eventResult{View: state}, nil)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrValidationFailed),
		errors.Is(err, usecase.ErrDuplicateEmail),
		errors.Is(err, usecase.ErrEmptyCart):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrNotAuthenticated):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, usecase.ErrSubmissionInProgress),
		errors.Is(err, usecase.ErrOrderCancelled):
		return http.StatusConflict, err.Error()

	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// NoteLog gives every request its own toast log, see viewSync.flush.
func NoteLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(usecase.WithNoteLog(r.Context())))
	})
}

func decodeJSON(r *http.Request, dest any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dest)
}
