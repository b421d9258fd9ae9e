package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"art-shop/internal/data/entity"
	"art-shop/internal/data/gateway"
	"art-shop/internal/dto/request"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

const defaultFallbackDelay = 800 * time.Millisecond

// CheckoutService is the Checkout Coordinator. An order goes through three
// phases so a caller holding a lock can release it around Send:
//
//	Prepare  → guard checks and order snapshot
//	Send     → remote submission, or the simulated fallback
//	Complete → clear the cart and issue the confirmation
//
// SubmitOrder runs all three.
type CheckoutService interface {
	ShippingCost(delivery entity.Delivery) float64
	BuildSummary(items []entity.CartItem, delivery entity.Delivery) entity.OrderSummary
	Prepare(ctx context.Context, req *request.CheckoutRequest) (*OrderAttempt, error)
	Send(ctx context.Context, attempt *OrderAttempt) error
	Complete(ctx context.Context, attempt *OrderAttempt) (*entity.Confirmation, error)
	SubmitOrder(ctx context.Context, req *request.CheckoutRequest) (*entity.Confirmation, error)
	// CancelPending aborts the in-flight attempt, if any. The cart is left
	// untouched.
	CancelPending() bool
	State() entity.OrderState
}

// OrderAttempt is one submission, from Prepare until Complete or abort.
type OrderAttempt struct {
	Order   entity.Order
	Summary entity.OrderSummary
	// Offline is set when the remote submission failed and the
	// confirmation comes from the local fallback.
	Offline bool
	// Cause is the submission failure recovered by the fallback.
	Cause error

	settled bool
}

type checkoutService struct {
	session       SessionService
	cart          CartService
	delivery      DeliveryService
	orders        gateway.OrderSubmitter
	fallbackDelay time.Duration
	now           func() time.Time
	log           *zap.Logger

	mu              sync.Mutex
	state           entity.OrderState
	inFlight        bool
	cancel          context.CancelFunc
	cancelRequested bool
	// committed: Send sudah selesai, attempt tidak bisa dibatalkan lagi
	committed bool
}

func NewCheckoutService(
	session SessionService,
	cart CartService,
	delivery DeliveryService,
	orders gateway.OrderSubmitter,
	config *utils.Config,
	log *zap.Logger,
) CheckoutService {
	delay := config.Order.FallbackDelay
	if delay <= 0 {
		delay = defaultFallbackDelay
	}
	return &checkoutService{
		session:       session,
		cart:          cart,
		delivery:      delivery,
		orders:        orders,
		fallbackDelay: delay,
		now:           time.Now,
		log:           log.With(zap.String("service", "checkout")),
		state:         entity.OrderStateIdle,
	}
}

// ShippingCost: standard 8.99, express 15.99, pickup 0. Anything else is
// charged as standard.
func (s *checkoutService) ShippingCost(delivery entity.Delivery) float64 {
	return delivery.ShippingCost()
}

func (s *checkoutService) BuildSummary(items []entity.CartItem, delivery entity.Delivery) entity.OrderSummary {
	delivery = delivery.OrDefault()
	subtotal := Subtotal(items)
	shipping := s.ShippingCost(delivery)
	return entity.OrderSummary{
		Items:    entity.CloneItems(items),
		Delivery: delivery,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

func (s *checkoutService) Prepare(ctx context.Context, req *request.CheckoutRequest) (*OrderAttempt, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		s.log.Warn("Order submission already in progress")
		return nil, ErrSubmissionInProgress
	}
	s.inFlight = true
	s.cancelRequested = false
	s.committed = false
	s.state = entity.OrderStateValidating
	s.mu.Unlock()

	// 1. Harus login
	user := s.session.CurrentUser()
	if user == nil {
		s.reject()
		return nil, ErrNotAuthenticated
	}

	// 2. Cart tidak boleh kosong
	items := s.cart.Items()
	if len(items) == 0 {
		s.reject()
		return nil, ErrEmptyCart
	}

	// 3. Validasi form checkout
	trimCheckoutRequest(req)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		s.reject()
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	delivery := entity.Delivery(req.Delivery)
	if delivery == "" {
		delivery = s.delivery.Current()
	}
	summary := s.BuildSummary(items, delivery)

	attempt := &OrderAttempt{
		Order: entity.Order{
			Items: summary.Items,
			Customer: entity.Customer{
				Name:  req.FullName,
				Email: req.Email,
			},
			Delivery: summary.Delivery,
			Shipping: summary.Shipping,
			Subtotal: summary.Subtotal,
			Total:    summary.Total,
		},
		Summary: summary,
	}

	s.log.Info("Order prepared",
		zap.String("email", user.Email),
		zap.Int("items", len(items)),
		zap.String("delivery", string(summary.Delivery)),
		zap.Float64("total", summary.Total),
	)
	return attempt, nil
}

func (s *checkoutService) Send(ctx context.Context, attempt *OrderAttempt) error {
	if attempt == nil || attempt.settled {
		return fmt.Errorf("send order: attempt already settled")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.cancel = cancel
	if s.cancelRequested {
		cancel()
	}
	s.state = entity.OrderStateSubmitting
	s.mu.Unlock()

	err := s.orders.Submit(ctx, &attempt.Order)
	if err == nil {
		// the endpoint already has the order, a late cancel cannot undo it
		s.commit()
		s.log.Info("Order accepted by remote endpoint", zap.Float64("total", attempt.Order.Total))
		return nil
	}
	if ctx.Err() != nil {
		s.abort(attempt)
		return fmt.Errorf("%w: %v", ErrOrderCancelled, ctx.Err())
	}

	kind := ErrSubmissionFailed
	if errors.Is(err, gateway.ErrTimeout) {
		kind = ErrSubmissionTimeout
	}
	attempt.Offline = true
	attempt.Cause = fmt.Errorf("%w: %v", kind, err)

	s.setState(entity.OrderStateFallbackSimulating)
	s.log.Warn("Order endpoint unavailable, falling back to local simulation",
		zap.Error(attempt.Cause),
		zap.Duration("delay", s.fallbackDelay),
	)

	timer := time.NewTimer(s.fallbackDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		s.mu.Lock()
		cancelled := ctx.Err() != nil
		if !cancelled {
			s.committed = true
			s.cancel = nil
		}
		s.mu.Unlock()
		if !cancelled {
			return nil
		}
		s.abort(attempt)
		return fmt.Errorf("%w: %v", ErrOrderCancelled, ctx.Err())
	case <-ctx.Done():
		s.abort(attempt)
		return fmt.Errorf("%w: %v", ErrOrderCancelled, ctx.Err())
	}
}

func (s *checkoutService) Complete(ctx context.Context, attempt *OrderAttempt) (*entity.Confirmation, error) {
	if attempt == nil || attempt.settled {
		return nil, fmt.Errorf("complete order: attempt already settled")
	}

	if err := s.cart.Clear(ctx); err != nil {
		s.abort(attempt)
		return nil, fmt.Errorf("complete order: %w", err)
	}
	attempt.settled = true

	now := s.now()
	confirmation := &entity.Confirmation{
		OrderNumber:      utils.GenerateOrderNumber(now),
		DeliveryEstimate: attempt.Order.Delivery.Estimate(),
		Delivery:         attempt.Order.Delivery,
		Summary:          attempt.Summary,
		Offline:          attempt.Offline,
		ConfirmedAt:      now,
	}

	s.mu.Lock()
	s.state = entity.OrderStateConfirmed
	s.inFlight = false
	s.committed = false
	s.cancel = nil
	s.mu.Unlock()

	s.log.Info("Order confirmed",
		zap.String("order_number", confirmation.OrderNumber),
		zap.Bool("offline", confirmation.Offline),
	)
	return confirmation, nil
}

func (s *checkoutService) SubmitOrder(ctx context.Context, req *request.CheckoutRequest) (*entity.Confirmation, error) {
	attempt, err := s.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Send(ctx, attempt); err != nil {
		return nil, err
	}
	return s.Complete(ctx, attempt)
}

func (s *checkoutService) CancelPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inFlight || s.committed {
		return false
	}
	if s.cancel != nil {
		s.cancel()
	} else {
		s.cancelRequested = true
	}
	s.log.Info("Pending order cancelled", zap.String("state", string(s.state)))
	return true
}

func (s *checkoutService) State() entity.OrderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// commit marks the current attempt as no longer cancellable.
func (s *checkoutService) commit() {
	s.mu.Lock()
	s.committed = true
	s.cancel = nil
	s.mu.Unlock()
}

func (s *checkoutService) setState(state entity.OrderState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *checkoutService) reject() {
	s.mu.Lock()
	s.state = entity.OrderStateRejected
	s.inFlight = false
	s.committed = false
	s.cancel = nil
	s.mu.Unlock()
}

func (s *checkoutService) abort(attempt *OrderAttempt) {
	attempt.settled = true
	s.reject()
}

func trimCheckoutRequest(req *request.CheckoutRequest) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Address = strings.TrimSpace(req.Address)
	req.City = strings.TrimSpace(req.City)
	req.PostalCode = strings.TrimSpace(req.PostalCode)
	req.Delivery = strings.TrimSpace(req.Delivery)
}
