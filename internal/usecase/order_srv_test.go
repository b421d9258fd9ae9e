package usecase

import (
	"context"
	"testing"

	"art-shop/internal/data/repository"
	"art-shop/internal/dto/request"
	"art-shop/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validOrderRequest() *request.OrderReceiveRequest {
	return &request.OrderReceiveRequest{
		Items: []request.OrderItem{
			{ID: "a", Name: "Abstract Painting", Price: 299.99, Image: "abstract.jpg", Quantity: 2},
		},
		Customer: request.OrderCustomer{Name: "Lyn Artist", Email: "lyn@example.com"},
		Delivery: "express",
		Shipping: 15.99,
		Subtotal: 599.98,
		Total:    615.97,
	}
}

func TestOrderReceive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewOrderRepository(database.NewMemoryKV(), zap.NewNop())
	svc := NewOrderService(repo, zap.NewNop())

	order, err := svc.Receive(ctx, validOrderRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, "lyn@example.com", order.Order.Customer.Email)

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.Reference, orders[0].Reference)
}

func TestOrderReceiveRejectsInconsistentTotals(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(repository.NewOrderRepository(database.NewMemoryKV(), zap.NewNop()), zap.NewNop())

	req := validOrderRequest()
	req.Subtotal = 10
	_, err := svc.Receive(ctx, req)
	assert.ErrorIs(t, err, ErrValidationFailed)

	req = validOrderRequest()
	req.Shipping = 0
	_, err = svc.Receive(ctx, req)
	assert.ErrorIs(t, err, ErrValidationFailed)

	req = validOrderRequest()
	req.Total = 700
	_, err = svc.Receive(ctx, req)
	assert.ErrorIs(t, err, ErrValidationFailed)

	req = validOrderRequest()
	req.Items = nil
	_, err = svc.Receive(ctx, req)
	assert.ErrorIs(t, err, ErrValidationFailed)

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
