package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"art-shop/internal/data/entity"
	"art-shop/internal/data/repository"
	"art-shop/internal/dto/request"
	"art-shop/pkg/database"
	"art-shop/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Order: utils.OrderConfig{
			FallbackDelay: 10 * time.Millisecond,
		},
		Session: utils.SessionConfig{
			BcryptCost: bcrypt.MinCost,
		},
	}
}

// fakeSubmitter records orders and answers with err. When block is set,
// Submit waits for it (or ctx) after signalling entered.
type fakeSubmitter struct {
	mu      sync.Mutex
	err     error
	calls   int
	orders  []entity.Order
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSubmitter) Submit(ctx context.Context, order *entity.Order) error {
	f.mu.Lock()
	f.calls++
	f.orders = append(f.orders, *order)
	err, block, entered := f.err, f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeSubmitter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// countingCart counts Clear calls on top of a real cart store.
type countingCart struct {
	CartService
	mu     sync.Mutex
	clears int
}

func (c *countingCart) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.clears++
	c.mu.Unlock()
	return c.CartService.Clear(ctx)
}

func (c *countingCart) Clears() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clears
}

// countingCartRepo counts writes to the cart key.
type countingCartRepo struct {
	repository.CartRepository
	saves int
}

func (r *countingCartRepo) Save(ctx context.Context, items []entity.CartItem) error {
	r.saves++
	return r.CartRepository.Save(ctx, items)
}

type note struct {
	Message  string
	Severity Severity
}

type recordingPresenter struct {
	mu           sync.Mutex
	cartCount    int
	items        []entity.CartItem
	subtotal     float64
	user         *entity.User
	summary      *entity.OrderSummary
	confirmation *entity.Confirmation
	processing   []bool
	notes        []note
	modals       map[Modal]bool
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{modals: make(map[Modal]bool)}
}

func (p *recordingPresenter) RenderCartCount(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cartCount = total
}

func (p *recordingPresenter) RenderCart(items []entity.CartItem, subtotal float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.subtotal = subtotal
}

func (p *recordingPresenter) RenderSession(user *entity.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.user = user
}

func (p *recordingPresenter) RenderSummary(summary entity.OrderSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary = &summary
}

func (p *recordingPresenter) RenderConfirmation(confirmation *entity.Confirmation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmation = confirmation
}

func (p *recordingPresenter) SetProcessing(processing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processing = append(p.processing, processing)
}

func (p *recordingPresenter) Notify(message string, severity Severity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, note{Message: message, Severity: severity})
}

func (p *recordingPresenter) SetModal(modal Modal, open bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modals[modal] = open
}

func (p *recordingPresenter) lastNote() note {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.notes) == 0 {
		return note{}
	}
	return p.notes[len(p.notes)-1]
}

type fixture struct {
	kv       *database.MemoryKV
	repo     *repository.Repository
	config   *utils.Config
	session  SessionService
	cart     *countingCart
	delivery DeliveryService
	orders   *fakeSubmitter
	checkout CheckoutService
	view     *recordingPresenter
	store    Storefront
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, database.NewMemoryKV(), testConfig())
}

func newFixtureWith(t *testing.T, kv *database.MemoryKV, config *utils.Config) *fixture {
	t.Helper()
	log := zap.NewNop()

	f := &fixture{
		kv:     kv,
		repo:   repository.NewRepository(kv, log),
		config: config,
		orders: &fakeSubmitter{},
		view:   newRecordingPresenter(),
	}
	f.session = NewSessionService(f.repo, config, log)
	f.cart = &countingCart{CartService: NewCartService(f.repo.Cart, log)}
	f.delivery = NewDeliveryService(f.repo.Delivery, log)
	f.checkout = NewCheckoutService(f.session, f.cart, f.delivery, f.orders, config, log)
	f.store = NewStorefront(f.session, f.cart, f.delivery, f.checkout, f.view, config, log)

	require.NoError(t, f.store.Init(context.Background()))
	return f
}

func (f *fixture) signup(t *testing.T) *entity.User {
	t.Helper()
	user, err := f.store.Signup(context.Background(), &request.SignupRequest{
		Name:            "Lyn",
		Email:           "lyn@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) add(t *testing.T, name string, price float64) entity.CartItem {
	t.Helper()
	item, err := f.store.AddToCart(context.Background(), entity.Product{
		Name:  name,
		Price: price,
		Image: "images/" + name + ".jpg",
	})
	require.NoError(t, err)
	return item
}

func checkoutForm(delivery string) *request.CheckoutRequest {
	return &request.CheckoutRequest{
		FullName:   "Lyn Artist",
		Email:      "lyn@example.com",
		Address:    "1 Gallery Road",
		City:       "Paris",
		PostalCode: "75001",
		Delivery:   delivery,
	}
}

func zapNop() *zap.Logger { return zap.NewNop() }
