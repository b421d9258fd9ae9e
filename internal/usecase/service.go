package usecase

import (
	"art-shop/internal/data/gateway"
	"art-shop/internal/data/repository"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Session    SessionService
	Cart       CartService
	Delivery   DeliveryService
	Checkout   CheckoutService
	Order      OrderService
	Storefront Storefront
}

func NewService(repo *repository.Repository, orders gateway.OrderSubmitter, config *utils.Config, view Presenter, log *zap.Logger) *Service {
	session := NewSessionService(repo, config, log)
	cart := NewCartService(repo.Cart, log)
	delivery := NewDeliveryService(repo.Delivery, log)
	checkout := NewCheckoutService(session, cart, delivery, orders, config, log)

	return &Service{
		Session:    session,
		Cart:       cart,
		Delivery:   delivery,
		Checkout:   checkout,
		Order:      NewOrderService(repo.Order, log),
		Storefront: NewStorefront(session, cart, delivery, checkout, view, config, log),
	}
}
