package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"art-shop/internal/data/entity"
	"art-shop/internal/dto/request"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

const msgSomethingWrong = "Something went wrong. Please try again."

// Storefront turns UI events into store calls followed by the matching
// render calls. Events are serialised; only PlaceOrder releases the lock,
// while the order is on the wire.
type Storefront interface {
	Init(ctx context.Context) error
	Signup(ctx context.Context, req *request.SignupRequest) (*entity.User, error)
	Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error)
	Logout(ctx context.Context) error
	AddToCart(ctx context.Context, product entity.Product) (entity.CartItem, error)
	IncreaseQuantity(ctx context.Context, id string) error
	DecreaseQuantity(ctx context.Context, id string) error
	RemoveFromCart(ctx context.Context, id string) error
	ProceedToCheckout(ctx context.Context) (entity.OrderSummary, error)
	UpdateCheckoutSummary(delivery entity.Delivery) entity.OrderSummary
	SaveDeliveryChoice(ctx context.Context, delivery entity.Delivery) error
	PlaceOrder(ctx context.Context, req *request.CheckoutRequest) (*entity.Confirmation, error)
	CancelPendingOrder() bool
	CloseConfirmation()
	Snapshot() StorefrontState
}

// StorefrontState is a read-only copy of the stores.
type StorefrontState struct {
	User         *entity.User
	Items        []entity.CartItem
	Totals       CartTotals
	Delivery     entity.Delivery
	OrderState   entity.OrderState
	Confirmation *entity.Confirmation
}

type storefront struct {
	session  SessionService
	cart     CartService
	delivery DeliveryService
	checkout CheckoutService
	view     Presenter

	preserveCartOnLogout bool
	log                  *zap.Logger

	mu           sync.Mutex
	confirmation *entity.Confirmation
}

func NewStorefront(
	session SessionService,
	cart CartService,
	delivery DeliveryService,
	checkout CheckoutService,
	view Presenter,
	config *utils.Config,
	log *zap.Logger,
) Storefront {
	if view == nil {
		view = NopPresenter{}
	}
	return &storefront{
		session:              session,
		cart:                 cart,
		delivery:             delivery,
		checkout:             checkout,
		view:                 view,
		preserveCartOnLogout: config.Session.PreserveCartOnLogout,
		log:                  log.With(zap.String("service", "storefront")),
	}
}

func (s *storefront) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Load(ctx); err != nil {
		return err
	}
	if err := s.cart.Load(ctx); err != nil {
		return err
	}
	if err := s.delivery.Load(ctx); err != nil {
		return err
	}

	s.view.RenderSession(s.session.CurrentUser())
	s.renderCart()
	s.view.RenderSummary(s.checkout.BuildSummary(s.cart.Items(), s.delivery.Current()))

	s.log.Info("Storefront ready",
		zap.Bool("logged_in", s.session.CurrentUser() != nil),
		zap.Int("cart_count", s.cart.Totals().Count),
		zap.String("delivery", string(s.delivery.Current())),
	)
	return nil
}

func (s *storefront) Signup(ctx context.Context, req *request.SignupRequest) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.session.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidationFailed):
			switch {
			case req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "":
				s.notify(ctx, "Please fill in all fields", SeverityError)
			case !utils.IsEmail(req.Email):
				s.notify(ctx, "Please enter a valid email", SeverityError)
			case req.Password != req.ConfirmPassword:
				s.notify(ctx, "Passwords do not match", SeverityError)
			default:
				s.notify(ctx, "Please fill in all fields", SeverityError)
			}
		case errors.Is(err, ErrDuplicateEmail):
			s.notify(ctx, "Email already registered", SeverityError)
		default:
			s.notify(ctx, "Registration failed. Please try again.", SeverityError)
		}
		return nil, err
	}

	// akun baru mulai dengan cart kosong
	if err := s.cart.Replace(ctx, nil); err != nil {
		s.log.Error("Failed to reset cart after signup", zap.Error(err))
	}

	s.view.RenderSession(user)
	s.renderCart()
	s.view.SetModal(ModalSignup, false)
	s.notify(ctx, fmt.Sprintf("Welcome to Lyn's Art Gallery, %s!", user.Name), SeveritySuccess)
	return user, nil
}

func (s *storefront) Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.session.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidationFailed):
			s.notify(ctx, "Please fill in all fields", SeverityError)
		case errors.Is(err, ErrInvalidCredentials):
			s.notify(ctx, "Invalid email or password", SeverityError)
		default:
			s.notify(ctx, "Login failed. Please try again.", SeverityError)
		}
		return nil, err
	}

	if err := s.cart.Replace(ctx, user.Cart); err != nil {
		s.log.Error("Failed to restore cart after login", zap.Error(err))
	}

	s.view.RenderSession(user)
	s.renderCart()
	s.view.SetModal(ModalLogin, false)
	s.notify(ctx, fmt.Sprintf("Welcome back, %s!", user.Name), SeveritySuccess)
	return user, nil
}

func (s *storefront) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.preserveCartOnLogout && s.session.CurrentUser() != nil {
		if err := s.session.SaveCart(ctx, s.cart.Items()); err != nil {
			s.log.Error("Failed to keep cart for next login", zap.Error(err))
		}
	}

	if err := s.session.Logout(ctx); err != nil {
		s.notify(ctx, msgSomethingWrong, SeverityError)
		return err
	}
	if err := s.cart.Replace(ctx, nil); err != nil {
		s.log.Error("Failed to reset cart after logout", zap.Error(err))
	}

	s.view.RenderSession(nil)
	s.renderCart()
	s.notify(ctx, "You have been logged out", SeveritySuccess)
	return nil
}

func (s *storefront) AddToCart(ctx context.Context, product entity.Product) (entity.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.cart.AddItem(ctx, product)
	if err != nil {
		s.notifyError(ctx, err)
		return entity.CartItem{}, err
	}

	s.renderCart()
	s.notify(ctx, fmt.Sprintf("%s added to cart!", item.Name), SeveritySuccess)
	return item, nil
}

func (s *storefront) IncreaseQuantity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Increment(ctx, id); err != nil {
		s.notifyError(ctx, err)
		return err
	}
	s.renderCart()
	return nil
}

func (s *storefront) DecreaseQuantity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cart.Find(id)
	if err := s.cart.Decrement(ctx, id); err != nil {
		s.notifyError(ctx, err)
		return err
	}
	s.renderCart()
	if ok && item.Quantity <= 1 {
		s.notify(ctx, "Item removed from cart", SeverityError)
	}
	return nil
}

func (s *storefront) RemoveFromCart(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.cart.Find(id)
	if err := s.cart.RemoveItem(ctx, id); err != nil {
		s.notifyError(ctx, err)
		return err
	}
	s.renderCart()
	if ok {
		s.notify(ctx, "Item removed from cart", SeverityError)
	}
	return nil
}

func (s *storefront) ProceedToCheckout(ctx context.Context) (entity.OrderSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.CurrentUser() == nil {
		s.notify(ctx, "Please login to checkout", SeverityError)
		s.view.SetModal(ModalLogin, true)
		return entity.OrderSummary{}, ErrNotAuthenticated
	}
	items := s.cart.Items()
	if len(items) == 0 {
		s.notify(ctx, "Your cart is empty!", SeverityError)
		return entity.OrderSummary{}, ErrEmptyCart
	}

	summary := s.checkout.BuildSummary(items, s.delivery.Current())
	s.view.RenderSummary(summary)
	s.view.SetModal(ModalCheckout, true)
	return summary, nil
}

// UpdateCheckoutSummary re-renders the summary for the delivery selected in
// the form. An empty delivery means the saved preference.
func (s *storefront) UpdateCheckoutSummary(delivery entity.Delivery) entity.OrderSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if delivery == "" {
		delivery = s.delivery.Current()
	}
	summary := s.checkout.BuildSummary(s.cart.Items(), delivery)
	s.view.RenderSummary(summary)
	return summary
}

func (s *storefront) SaveDeliveryChoice(ctx context.Context, delivery entity.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.delivery.Save(ctx, delivery); err != nil {
		if errors.Is(err, ErrValidationFailed) {
			s.notify(ctx, "Please choose a delivery method", SeverityError)
		} else {
			s.notify(ctx, msgSomethingWrong, SeverityError)
		}
		return err
	}

	s.view.RenderSummary(s.checkout.BuildSummary(s.cart.Items(), delivery))
	s.view.SetModal(ModalDelivery, false)
	s.notify(ctx, "Delivery preference saved!", SeveritySuccess)
	return nil
}

func (s *storefront) PlaceOrder(ctx context.Context, req *request.CheckoutRequest) (*entity.Confirmation, error) {
	s.mu.Lock()
	attempt, err := s.checkout.Prepare(ctx, req)
	if err != nil {
		s.notifyOrderError(ctx, err)
		s.mu.Unlock()
		return nil, err
	}
	s.view.SetProcessing(true)
	s.mu.Unlock()

	// lock dilepas selama request ke order endpoint
	sendErr := s.checkout.Send(ctx, attempt)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.SetProcessing(false)
	if sendErr != nil {
		s.notifyOrderError(ctx, sendErr)
		return nil, sendErr
	}

	confirmation, err := s.checkout.Complete(ctx, attempt)
	if err != nil {
		s.notify(ctx, msgSomethingWrong, SeverityError)
		return nil, err
	}
	s.confirmation = confirmation

	s.renderCart()
	s.view.SetModal(ModalCheckout, false)
	s.view.RenderConfirmation(confirmation)
	s.view.SetModal(ModalConfirmation, true)
	if confirmation.Offline {
		s.notify(ctx, "Order placed successfully! (offline mode)", SeveritySuccess)
	} else {
		s.notify(ctx, "Order placed successfully! We have emailed the order details.", SeveritySuccess)
	}
	return confirmation, nil
}

func (s *storefront) CancelPendingOrder() bool {
	return s.checkout.CancelPending()
}

func (s *storefront) CloseConfirmation() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.confirmation = nil
	s.view.SetModal(ModalConfirmation, false)
}

func (s *storefront) Snapshot() StorefrontState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StorefrontState{
		User:         s.session.CurrentUser(),
		Items:        s.cart.Items(),
		Totals:       s.cart.Totals(),
		Delivery:     s.delivery.Current(),
		OrderState:   s.checkout.State(),
		Confirmation: s.confirmation,
	}
}

func (s *storefront) renderCart() {
	totals := s.cart.Totals()
	s.view.RenderCartCount(totals.Count)
	s.view.RenderCart(s.cart.Items(), totals.Subtotal)
}

// notify sends a toast to the presenter and to the event's note log.
func (s *storefront) notify(ctx context.Context, message string, severity Severity) {
	s.view.Notify(message, severity)
	recordNote(ctx, Note{Message: message, Severity: severity})
}

func (s *storefront) notifyError(ctx context.Context, err error) {
	if errors.Is(err, ErrValidationFailed) {
		msg := strings.TrimPrefix(err.Error(), ErrValidationFailed.Error()+": ")
		s.notify(ctx, msg, SeverityError)
		return
	}
	s.notify(ctx, msgSomethingWrong, SeverityError)
}

func (s *storefront) notifyOrderError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		s.notify(ctx, "Please login to complete your purchase", SeverityError)
		s.view.SetModal(ModalLogin, true)
	case errors.Is(err, ErrEmptyCart):
		s.notify(ctx, "Your cart is empty!", SeverityError)
	case errors.Is(err, ErrValidationFailed):
		s.notify(ctx, "Please fill in all required fields", SeverityError)
	case errors.Is(err, ErrSubmissionInProgress):
		s.notify(ctx, "Your order is already being processed", SeverityError)
	case errors.Is(err, ErrOrderCancelled):
		s.notify(ctx, "Order cancelled", SeverityError)
	default:
		s.notify(ctx, msgSomethingWrong, SeverityError)
	}
}
