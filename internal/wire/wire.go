// internal/wire/wire.go
package wire

import (
	"net/http"

	"art-shop/internal/adaptor"
	"art-shop/internal/data/gateway"
	"art-shop/internal/data/repository"
	"art-shop/internal/usecase"
	"art-shop/pkg/middleware"
	"art-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Hub     *adaptor.Hub
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, orders gateway.OrderSubmitter, config *utils.Config, logger *zap.Logger) *App {
	view := adaptor.NewViewPresenter()
	hub := adaptor.NewHub(logger)

	service := usecase.NewService(repo, orders, config, view, logger)
	handler := adaptor.NewHandler(service, view, hub, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
		Hub:     hub,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(adaptor.NoteLog)

	// Apply routes
	wireAuth(r, handler.Auth)
	wireCart(r, handler.Cart)
	wireDelivery(r, handler.Delivery)
	wireCheckout(r, handler.Checkout)
	wireStorefront(r, handler.Storefront, handler.Live)
	if config.Order.ReceiverEnabled {
		wireOrder(r, handler.Order, config, logger)
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
