package adaptor

import (
	"net/http"

	"art-shop/internal/dto/request"
	"art-shop/internal/dto/response"
	"art-shop/internal/usecase"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	store usecase.Storefront
	viewSync
}

func NewAuthHandler(store usecase.Storefront, view *ViewPresenter, hub *Hub, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		store:    store,
		viewSync: viewSync{view: view, hub: hub, log: log.With(zap.String("handler", "auth"))},
	}
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.store.Signup(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "signup")
		return
	}

	h.respond(w, r, http.StatusCreated, "Registration successful", response.UserToResponse(user))
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.store.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "login")
		return
	}

	h.respond(w, r, http.StatusOK, "Login successful", response.UserToResponse(user))
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "logout")
		return
	}

	h.respond(w, r, http.StatusOK, "Logout successful", nil)
}
