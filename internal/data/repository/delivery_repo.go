package repository

import (
	"context"
	"fmt"

	"art-shop/internal/data/entity"
	"art-shop/pkg/database"

	"go.uber.org/zap"
)

// DeliveryRepository stores the delivery preference as a plain string.
type DeliveryRepository interface {
	Get(ctx context.Context) (entity.Delivery, bool, error)
	Save(ctx context.Context, delivery entity.Delivery) error
}

type deliveryRepository struct {
	kv  database.KVStore
	log *zap.Logger
}

func NewDeliveryRepository(kv database.KVStore, log *zap.Logger) DeliveryRepository {
	return &deliveryRepository{
		kv:  kv,
		log: log.With(zap.String("repository", "delivery")),
	}
}

func (r *deliveryRepository) Get(ctx context.Context) (entity.Delivery, bool, error) {
	raw, ok, err := r.kv.Get(ctx, KeyDeliveryPreference)
	if err != nil {
		r.log.Error("Failed to load delivery preference", zap.Error(err))
		return "", false, fmt.Errorf("load delivery preference: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return entity.Delivery(raw), true, nil
}

func (r *deliveryRepository) Save(ctx context.Context, delivery entity.Delivery) error {
	if err := r.kv.Set(ctx, KeyDeliveryPreference, string(delivery)); err != nil {
		r.log.Error("Failed to save delivery preference", zap.Error(err), zap.String("delivery", string(delivery)))
		return fmt.Errorf("save delivery preference: %w", err)
	}
	return nil
}
