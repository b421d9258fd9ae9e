package usecase

import (
	"context"
	"errors"
	"testing"

	"art-shop/internal/data/entity"
	"art-shop/internal/data/repository"
	"art-shop/internal/dto/request"
	"art-shop/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorefrontInitRehydrates(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, repository.KeyCurrentUser, `{"id":"00000000-0000-0000-0000-000000000001","name":"Lyn","email":"lyn@example.com","cart":[]}`))
	require.NoError(t, kv.Set(ctx, repository.KeyCart, `[{"id":"a","name":"Sunset","price":120,"image":"s.jpg","quantity":3}]`))
	require.NoError(t, kv.Set(ctx, repository.KeyDeliveryPreference, "pickup"))

	f := newFixtureWith(t, kv, testConfig())

	require.NotNil(t, f.view.user)
	assert.Equal(t, "Lyn", f.view.user.Name)
	assert.Equal(t, 3, f.view.cartCount)
	assert.Equal(t, 360.0, f.view.subtotal)
	require.NotNil(t, f.view.summary)
	assert.Equal(t, entity.DeliveryPickup, f.view.summary.Delivery)
	assert.Equal(t, entity.DeliveryPickup, f.store.Snapshot().Delivery)
}

func TestStorefrontInitToleratesCorruptState(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, repository.KeyCurrentUser, `{{{`))
	require.NoError(t, kv.Set(ctx, repository.KeyCart, `"nope"`))
	require.NoError(t, kv.Set(ctx, repository.KeyDeliveryPreference, "carrier-pigeon"))

	f := newFixtureWith(t, kv, testConfig())

	state := f.store.Snapshot()
	assert.Nil(t, state.User)
	assert.Empty(t, state.Items)
	assert.Equal(t, entity.DeliveryStandard, state.Delivery)
}

func TestStorefrontSignupResetsCart(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Sunset", 120)

	user := f.signup(t)
	assert.Equal(t, "Lyn", user.Name)

	assert.Empty(t, f.store.Snapshot().Items)
	assert.Equal(t, 0, f.view.cartCount)
	assert.Equal(t, "Welcome to Lyn's Art Gallery, Lyn!", f.view.lastNote().Message)
	assert.Equal(t, SeveritySuccess, f.view.lastNote().Severity)
	assert.False(t, f.view.modals[ModalSignup])
}

func TestStorefrontSignupErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.store.Signup(ctx, &request.SignupRequest{Name: "Lyn", Email: "lyn@example.com", Password: "a", ConfirmPassword: "b"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, note{"Passwords do not match", SeverityError}, f.view.lastNote())

	_, err = f.store.Signup(ctx, &request.SignupRequest{Name: "Lyn"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "Please fill in all fields", f.view.lastNote().Message)

	_, err = f.store.Signup(ctx, &request.SignupRequest{Name: "Lyn", Email: "lyn-at-example", Password: "a", ConfirmPassword: "a"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, note{"Please enter a valid email", SeverityError}, f.view.lastNote())

	f.signup(t)
	_, err = f.store.Signup(ctx, &request.SignupRequest{Name: "Lyn", Email: "lyn@example.com", Password: "a", ConfirmPassword: "a"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, "Email already registered", f.view.lastNote().Message)
}

func TestStorefrontLogoutResetsSessionAndCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signup(t)
	f.add(t, "Sunset", 120)
	require.NoError(t, f.store.SaveDeliveryChoice(ctx, entity.DeliveryExpress))

	require.NoError(t, f.store.Logout(ctx))

	state := f.store.Snapshot()
	assert.Nil(t, state.User)
	assert.Empty(t, state.Items)
	assert.Nil(t, f.view.user)
	assert.Equal(t, "You have been logged out", f.view.lastNote().Message)

	// delivery preference outlives the session
	assert.Equal(t, entity.DeliveryExpress, state.Delivery)

	raw, ok, err := f.kv.Get(ctx, repository.KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, raw)

	_, ok, err = f.kv.Get(ctx, repository.KeyCurrentUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorefrontLogoutDropsCartByDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signup(t)
	f.add(t, "Sunset", 120)
	require.NoError(t, f.store.Logout(ctx))

	_, err := f.store.Login(ctx, &request.LoginRequest{Email: "lyn@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Empty(t, f.store.Snapshot().Items)
	assert.Equal(t, "Welcome back, Lyn!", f.view.lastNote().Message)
}

func TestStorefrontPreserveCartOnLogout(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Session.PreserveCartOnLogout = true
	f := newFixtureWith(t, database.NewMemoryKV(), cfg)

	f.signup(t)
	f.add(t, "Sunset", 120)
	f.add(t, "Sunset", 120)
	require.NoError(t, f.store.Logout(ctx))
	assert.Empty(t, f.store.Snapshot().Items)

	_, err := f.store.Login(ctx, &request.LoginRequest{Email: "lyn@example.com", Password: "secret"})
	require.NoError(t, err)

	items := f.store.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, f.view.cartCount)
}

func TestStorefrontLoginFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "Sunset", 120)

	_, err := f.store.Login(ctx, &request.LoginRequest{Email: "ghost@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, note{"Invalid email or password", SeverityError}, f.view.lastNote())
	assert.Nil(t, f.store.Snapshot().User)
	assert.Len(t, f.store.Snapshot().Items, 1)
}

func TestStorefrontCartEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	item := f.add(t, "Sunset", 120)
	assert.Equal(t, "Sunset added to cart!", f.view.lastNote().Message)
	assert.Equal(t, 1, f.view.cartCount)

	require.NoError(t, f.store.IncreaseQuantity(ctx, item.ID))
	assert.Equal(t, 2, f.view.cartCount)
	assert.Equal(t, 240.0, f.view.subtotal)

	require.NoError(t, f.store.DecreaseQuantity(ctx, item.ID))
	assert.Equal(t, 1, f.view.cartCount)

	require.NoError(t, f.store.DecreaseQuantity(ctx, item.ID))
	assert.Equal(t, 0, f.view.cartCount)
	assert.Equal(t, note{"Item removed from cart", SeverityError}, f.view.lastNote())

	other := f.add(t, "Harbor", 80)
	require.NoError(t, f.store.RemoveFromCart(ctx, other.ID))
	assert.Equal(t, note{"Item removed from cart", SeverityError}, f.view.lastNote())
	assert.Empty(t, f.view.items)

	notes := len(f.view.notes)
	require.NoError(t, f.store.RemoveFromCart(ctx, "missing"))
	assert.Len(t, f.view.notes, notes, "absent id is silent")
}

func TestStorefrontProceedToCheckout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "Sunset", 120)

	_, err := f.store.ProceedToCheckout(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, "Please login to checkout", f.view.lastNote().Message)
	assert.True(t, f.view.modals[ModalLogin])

	f.signup(t)
	_, err = f.store.ProceedToCheckout(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, "Your cart is empty!", f.view.lastNote().Message)

	f.add(t, "Sunset", 120)
	summary, err := f.store.ProceedToCheckout(ctx)
	require.NoError(t, err)
	assert.True(t, f.view.modals[ModalCheckout])
	assert.InDelta(t, 128.99, summary.Total, 1e-9)
	assert.Equal(t, summary, *f.view.summary)
}

func TestStorefrontUpdateCheckoutSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "Sunset", 100)

	summary := f.store.UpdateCheckoutSummary(entity.DeliveryExpress)
	assert.InDelta(t, 115.99, summary.Total, 1e-9)

	require.NoError(t, f.store.SaveDeliveryChoice(ctx, entity.DeliveryPickup))
	assert.Equal(t, "Delivery preference saved!", f.view.lastNote().Message)
	assert.False(t, f.view.modals[ModalDelivery])
	assert.Equal(t, 100.0, f.view.summary.Total)

	summary = f.store.UpdateCheckoutSummary("")
	assert.Equal(t, entity.DeliveryPickup, summary.Delivery)

	err := f.store.SaveDeliveryChoice(ctx, "teleport")
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, entity.DeliveryPickup, f.store.Snapshot().Delivery)
}

func TestStorefrontPlaceOrderRemote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signup(t)
	f.add(t, "Abstract Painting", 299.99)
	f.add(t, "Abstract Painting", 299.99)
	_, err := f.store.ProceedToCheckout(ctx)
	require.NoError(t, err)

	conf, err := f.store.PlaceOrder(ctx, checkoutForm("express"))
	require.NoError(t, err)

	assert.Equal(t, "2-3 business days", conf.DeliveryEstimate)
	assert.Equal(t, 1, f.cart.Clears())
	assert.Equal(t, 0, f.view.cartCount)
	assert.False(t, f.view.modals[ModalCheckout])
	assert.True(t, f.view.modals[ModalConfirmation])
	assert.Equal(t, conf, f.view.confirmation)
	assert.Equal(t, []bool{true, false}, f.view.processing)
	assert.Equal(t, note{"Order placed successfully! We have emailed the order details.", SeveritySuccess}, f.view.lastNote())
	assert.Equal(t, conf, f.store.Snapshot().Confirmation)

	f.store.CloseConfirmation()
	assert.False(t, f.view.modals[ModalConfirmation])
	assert.Nil(t, f.store.Snapshot().Confirmation)
}

func TestStorefrontPlaceOrderOffline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.orders.err = errors.New("dial tcp: connection refused")
	f.signup(t)
	f.add(t, "Sunset", 120)

	conf, err := f.store.PlaceOrder(ctx, checkoutForm("express"))
	require.NoError(t, err)
	assert.True(t, conf.Offline)
	assert.Equal(t, "2-3 business days", conf.DeliveryEstimate)
	assert.Equal(t, 1, f.cart.Clears())
	assert.Equal(t, "Order placed successfully! (offline mode)", f.view.lastNote().Message)
}

func TestStorefrontPlaceOrderErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "Sunset", 120)

	_, err := f.store.PlaceOrder(ctx, checkoutForm("standard"))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, "Please login to complete your purchase", f.view.lastNote().Message)
	assert.True(t, f.view.modals[ModalLogin])
	assert.Len(t, f.store.Snapshot().Items, 1)

	f.signup(t)
	_, err = f.store.PlaceOrder(ctx, checkoutForm("standard"))
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, "Your cart is empty!", f.view.lastNote().Message)

	f.add(t, "Sunset", 120)
	form := checkoutForm("standard")
	form.Address = ""
	_, err = f.store.PlaceOrder(ctx, form)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "Please fill in all required fields", f.view.lastNote().Message)

	assert.Zero(t, f.orders.Calls())
	assert.Zero(t, f.cart.Clears())
	assert.Empty(t, f.view.processing)
}

func TestStorefrontEventsProceedDuringSubmission(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.orders.block = make(chan struct{})
	f.orders.entered = make(chan struct{}, 1)
	f.signup(t)
	f.add(t, "Sunset", 120)

	done := make(chan error, 1)
	go func() {
		_, err := f.store.PlaceOrder(ctx, checkoutForm("standard"))
		done <- err
	}()
	<-f.orders.entered

	// lock is free while the order is on the wire
	state := f.store.Snapshot()
	assert.Equal(t, entity.OrderStateSubmitting, state.OrderState)

	_, err := f.store.PlaceOrder(ctx, checkoutForm("standard"))
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.Equal(t, "Your order is already being processed", f.view.lastNote().Message)

	close(f.orders.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.cart.Clears())
}

func TestStorefrontCancelPendingOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.orders.block = make(chan struct{})
	f.orders.entered = make(chan struct{}, 1)
	f.signup(t)
	f.add(t, "Sunset", 120)

	assert.False(t, f.store.CancelPendingOrder())

	done := make(chan error, 1)
	go func() {
		_, err := f.store.PlaceOrder(ctx, checkoutForm("standard"))
		done <- err
	}()
	<-f.orders.entered

	assert.True(t, f.store.CancelPendingOrder())
	assert.ErrorIs(t, <-done, ErrOrderCancelled)
	assert.Len(t, f.store.Snapshot().Items, 1)
	assert.Equal(t, "Order cancelled", f.view.lastNote().Message)
}

func TestStorefrontRecordsNotesPerEvent(t *testing.T) {
	f := newFixture(t)

	addCtx := WithNoteLog(context.Background())
	_, err := f.store.AddToCart(addCtx, entity.Product{Name: "Sunset", Price: 120})
	require.NoError(t, err)

	checkoutCtx := WithNoteLog(context.Background())
	_, err = f.store.ProceedToCheckout(checkoutCtx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	addNotes, ok := NotesFrom(addCtx)
	require.True(t, ok)
	assert.Equal(t, []Note{{Message: "Sunset added to cart!", Severity: SeveritySuccess}}, addNotes)

	checkoutNotes, ok := NotesFrom(checkoutCtx)
	require.True(t, ok)
	assert.Equal(t, []Note{{Message: "Please login to checkout", Severity: SeverityError}}, checkoutNotes)

	_, ok = NotesFrom(context.Background())
	assert.False(t, ok)

	// the presenter still sees both
	assert.Len(t, f.view.notes, 2)
}
