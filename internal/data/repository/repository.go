package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"art-shop/pkg/database"

	"go.uber.org/zap"
)

// Storage keys, shared with the browser build of the storefront.
const (
	KeyUsers              = "users"
	KeyCurrentUser        = "currentUser"
	KeyCart               = "artShopCart"
	KeyDeliveryPreference = "deliveryPreference"

	// written only by the built-in order receiver
	KeyReceivedOrders = "receivedOrders"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Cart     CartRepository
	Delivery DeliveryRepository
	Order    OrderRepository
}

func NewRepository(kv database.KVStore, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(kv, log),
		Session:  NewSessionRepository(kv, log),
		Cart:     NewCartRepository(kv, log),
		Delivery: NewDeliveryRepository(kv, log),
		Order:    NewOrderRepository(kv, log),
	}
}

// loadJSON decodes the value under key into dest. found is false when the key
// is missing. A value that fails to decode is reported as errCorrupt.
func loadJSON(ctx context.Context, kv database.KVStore, key string, dest any) (found bool, err error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || raw == "" || raw == "null" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return true, &CorruptValueError{Key: key, Err: err}
	}
	return true, nil
}

func saveJSON(ctx context.Context, kv database.KVStore, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(b))
}

// CorruptValueError means the stored value exists but is not valid JSON for
// its key. Readers treat it as absent.
type CorruptValueError struct {
	Key string
	Err error
}

func (e *CorruptValueError) Error() string {
	return fmt.Sprintf("corrupt value under %s: %v", e.Key, e.Err)
}

func (e *CorruptValueError) Unwrap() error { return e.Err }
