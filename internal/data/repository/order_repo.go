package repository

import (
	"context"
	"errors"
	"fmt"

	"art-shop/internal/data/entity"
	"art-shop/pkg/database"

	"go.uber.org/zap"
)

// OrderRepository keeps the orders accepted by the built-in receiver.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.ReceivedOrder) error
	FindAll(ctx context.Context) ([]*entity.ReceivedOrder, error)
}

type orderRepository struct {
	kv  database.KVStore
	log *zap.Logger
}

func NewOrderRepository(kv database.KVStore, log *zap.Logger) OrderRepository {
	return &orderRepository{
		kv:  kv,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) FindAll(ctx context.Context) ([]*entity.ReceivedOrder, error) {
	var orders []*entity.ReceivedOrder
	if _, err := loadJSON(ctx, r.kv, KeyReceivedOrders, &orders); err != nil {
		var corrupt *CorruptValueError
		if errors.As(err, &corrupt) {
			r.log.Warn("Stored orders are corrupt, treating as empty", zap.Error(err))
			return []*entity.ReceivedOrder{}, nil
		}
		r.log.Error("Failed to load orders", zap.Error(err))
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if orders == nil {
		orders = []*entity.ReceivedOrder{}
	}
	return orders, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.ReceivedOrder) error {
	orders, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	if err := saveJSON(ctx, r.kv, KeyReceivedOrders, orders); err != nil {
		r.log.Error("Failed to save order",
			zap.Error(err),
			zap.String("reference", order.Reference),
		)
		return fmt.Errorf("save order %s: %w", order.Reference, err)
	}
	return nil
}
