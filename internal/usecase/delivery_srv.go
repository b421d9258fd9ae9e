package usecase

import (
	"context"
	"fmt"

	"art-shop/internal/data/entity"
	"art-shop/internal/data/repository"

	"go.uber.org/zap"
)

// DeliveryService keeps the delivery preference. Its lifecycle is independent
// of the cart and the session.
type DeliveryService interface {
	Load(ctx context.Context) error
	Current() entity.Delivery
	Save(ctx context.Context, delivery entity.Delivery) error
}

type deliveryService struct {
	repo repository.DeliveryRepository
	log  *zap.Logger

	current entity.Delivery
}

func NewDeliveryService(repo repository.DeliveryRepository, log *zap.Logger) DeliveryService {
	return &deliveryService{
		repo:    repo,
		log:     log.With(zap.String("service", "delivery")),
		current: entity.DeliveryStandard,
	}
}

func (s *deliveryService) Load(ctx context.Context) error {
	d, ok, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("rehydrate delivery preference: %w", err)
	}
	if ok && !d.Valid() {
		s.log.Warn("Unknown stored delivery preference, using standard", zap.String("delivery", string(d)))
	}
	s.current = d.OrDefault()
	return nil
}

func (s *deliveryService) Current() entity.Delivery {
	return s.current
}

func (s *deliveryService) Save(ctx context.Context, delivery entity.Delivery) error {
	if !delivery.Valid() {
		return fmt.Errorf("%w: unknown delivery method %q", ErrValidationFailed, delivery)
	}
	if err := s.repo.Save(ctx, delivery); err != nil {
		return err
	}
	s.current = delivery
	s.log.Info("Delivery preference saved", zap.String("delivery", string(delivery)))
	return nil
}
