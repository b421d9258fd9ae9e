package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"art-shop/internal/data/entity"
	"art-shop/internal/data/repository"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

// CartService is the Cart Store. Every mutation is persisted before it
// becomes visible in memory, so a failed write leaves both copies unchanged.
// It does not render; UI freshness is the caller's job.
type CartService interface {
	Load(ctx context.Context) error
	AddItem(ctx context.Context, product entity.Product) (entity.CartItem, error)
	Increment(ctx context.Context, id string) error
	Decrement(ctx context.Context, id string) error
	RemoveItem(ctx context.Context, id string) error
	// Clear empties the cart after a completed order.
	Clear(ctx context.Context) error
	// Replace swaps the whole cart, used at login/signup/logout boundaries.
	Replace(ctx context.Context, items []entity.CartItem) error
	Find(id string) (entity.CartItem, bool)
	Items() []entity.CartItem
	Totals() CartTotals
}

type CartTotals struct {
	Subtotal float64
	Count    int
}

type cartService struct {
	repo  repository.CartRepository
	newID func() string
	log   *zap.Logger

	items []entity.CartItem
}

func NewCartService(repo repository.CartRepository, log *zap.Logger) CartService {
	return &cartService{
		repo:  repo,
		newID: utils.GenerateItemID,
		log:   log.With(zap.String("service", "cart")),
		items: []entity.CartItem{},
	}
}

func (s *cartService) Load(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("rehydrate cart: %w", err)
	}
	s.items = items
	s.log.Debug("Cart restored", zap.Int("items", len(items)))
	return nil
}

func (s *cartService) AddItem(ctx context.Context, product entity.Product) (entity.CartItem, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return entity.CartItem{}, fmt.Errorf("%w: product name is required", ErrValidationFailed)
	}
	if product.Price < 0 {
		return entity.CartItem{}, fmt.Errorf("%w: price must not be negative", ErrValidationFailed)
	}

	next := entity.CloneItems(s.items)
	idx := -1
	for i, it := range next {
		if it.Name == product.Name {
			idx = i
			break
		}
	}

	if idx >= 0 {
		next[idx].Quantity++
	} else {
		next = append(next, entity.CartItem{
			ID:       s.newID(),
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.Image,
			Quantity: 1,
		})
		idx = len(next) - 1
	}

	if err := s.commit(ctx, next); err != nil {
		return entity.CartItem{}, err
	}

	s.log.Debug("Item added", zap.String("name", product.Name), zap.Int("quantity", next[idx].Quantity))
	return next[idx], nil
}

func (s *cartService) Increment(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := entity.CloneItems(s.items)
	next[idx].Quantity++
	return s.commit(ctx, next)
}

func (s *cartService) Decrement(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	if s.items[idx].Quantity <= 1 {
		return s.RemoveItem(ctx, id)
	}
	next := entity.CloneItems(s.items)
	next[idx].Quantity--
	return s.commit(ctx, next)
}

func (s *cartService) RemoveItem(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := make([]entity.CartItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	return s.commit(ctx, next)
}

func (s *cartService) Clear(ctx context.Context) error {
	if err := s.commit(ctx, []entity.CartItem{}); err != nil {
		return err
	}
	s.log.Info("Cart cleared")
	return nil
}

func (s *cartService) Replace(ctx context.Context, items []entity.CartItem) error {
	return s.commit(ctx, entity.CloneItems(items))
}

func (s *cartService) Find(id string) (entity.CartItem, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return entity.CartItem{}, false
	}
	return s.items[idx], true
}

func (s *cartService) Items() []entity.CartItem {
	return entity.CloneItems(s.items)
}

func (s *cartService) Totals() CartTotals {
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return CartTotals{
		Subtotal: Subtotal(s.items),
		Count:    count,
	}
}

func (s *cartService) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *cartService) commit(ctx context.Context, next []entity.CartItem) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

// Subtotal sums price x quantity at full precision. Line totals are added in
// ascending order so the result does not depend on insertion order.
func Subtotal(items []entity.CartItem) float64 {
	lines := make([]float64, len(items))
	for i, it := range items {
		lines[i] = it.LineTotal()
	}
	sort.Float64s(lines)

	var sum float64
	for _, v := range lines {
		sum += v
	}
	return sum
}
