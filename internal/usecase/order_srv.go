package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"art-shop/internal/data/entity"
	"art-shop/internal/data/repository"
	"art-shop/internal/dto/request"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

// OrderService backs POST /api/orders, the endpoint the checkout submits to
// when the storefront is its own backend.
type OrderService interface {
	Receive(ctx context.Context, req *request.OrderReceiveRequest) (*entity.ReceivedOrder, error)
	List(ctx context.Context) ([]*entity.ReceivedOrder, error)
}

type orderService struct {
	repo repository.OrderRepository
	log  *zap.Logger
}

func NewOrderService(repo repository.OrderRepository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func (s *orderService) Receive(ctx context.Context, req *request.OrderReceiveRequest) (*entity.ReceivedOrder, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Order payload validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	items := make([]entity.CartItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = entity.CartItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Image:    it.Image,
			Quantity: it.Quantity,
		}
	}

	// totals dihitung ulang, selisih lebih dari satu sen ditolak
	subtotal := Subtotal(items)
	if !sameCents(subtotal, req.Subtotal) {
		return nil, fmt.Errorf("%w: subtotal %.2f does not match items %.2f", ErrValidationFailed, req.Subtotal, subtotal)
	}
	if !sameCents(entity.Delivery(req.Delivery).ShippingCost(), req.Shipping) {
		return nil, fmt.Errorf("%w: shipping %.2f does not match %s delivery", ErrValidationFailed, req.Shipping, req.Delivery)
	}
	if !sameCents(req.Subtotal+req.Shipping, req.Total) {
		return nil, fmt.Errorf("%w: total %.2f does not match subtotal plus shipping", ErrValidationFailed, req.Total)
	}

	order := &entity.ReceivedOrder{
		Reference: utils.GenerateItemID(),
		Order: entity.Order{
			Items: items,
			Customer: entity.Customer{
				Name:  req.Customer.Name,
				Email: req.Customer.Email,
			},
			Delivery: entity.Delivery(req.Delivery),
			Shipping: req.Shipping,
			Subtotal: req.Subtotal,
			Total:    req.Total,
		},
		ReceivedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("Order received",
		zap.String("reference", order.Reference),
		zap.String("email", order.Order.Customer.Email),
		zap.Float64("total", order.Order.Total),
	)
	return order, nil
}

func (s *orderService) List(ctx context.Context) ([]*entity.ReceivedOrder, error) {
	return s.repo.FindAll(ctx)
}

func sameCents(a, b float64) bool {
	return math.Abs(a-b) < 0.005+1e-9
}
