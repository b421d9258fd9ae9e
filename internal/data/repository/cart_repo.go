package repository

import (
	"context"
	"errors"
	"fmt"

	"art-shop/internal/data/entity"
	"art-shop/pkg/database"

	"go.uber.org/zap"
)

type CartRepository interface {
	Load(ctx context.Context) ([]entity.CartItem, error)
	Save(ctx context.Context, items []entity.CartItem) error
}

type cartRepository struct {
	kv  database.KVStore
	log *zap.Logger
}

func NewCartRepository(kv database.KVStore, log *zap.Logger) CartRepository {
	return &cartRepository{
		kv:  kv,
		log: log.With(zap.String("repository", "cart")),
	}
}

// Load never returns a nil slice on success.
func (r *cartRepository) Load(ctx context.Context) ([]entity.CartItem, error) {
	var items []entity.CartItem
	if _, err := loadJSON(ctx, r.kv, KeyCart, &items); err != nil {
		var corrupt *CorruptValueError
		if errors.As(err, &corrupt) {
			r.log.Warn("Stored cart is corrupt, starting empty", zap.Error(err))
			return []entity.CartItem{}, nil
		}
		r.log.Error("Failed to load cart", zap.Error(err))
		return nil, fmt.Errorf("load cart: %w", err)
	}

	// drop rows that would break the quantity invariant
	valid := make([]entity.CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 || it.ID == "" {
			r.log.Warn("Dropping invalid cart row", zap.String("id", it.ID), zap.Int("quantity", it.Quantity))
			continue
		}
		valid = append(valid, it)
	}
	return valid, nil
}

func (r *cartRepository) Save(ctx context.Context, items []entity.CartItem) error {
	if items == nil {
		items = []entity.CartItem{}
	}
	if err := saveJSON(ctx, r.kv, KeyCart, items); err != nil {
		r.log.Error("Failed to save cart", zap.Error(err), zap.Int("items", len(items)))
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
