package repository

import (
	"context"
	"errors"
	"fmt"

	"art-shop/internal/data/entity"
	"art-shop/pkg/database"

	"go.uber.org/zap"
)

// SessionRepository persists the currently authenticated user.
type SessionRepository interface {
	Save(ctx context.Context, user *entity.User) error
	Current(ctx context.Context) (*entity.User, error)
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	kv  database.KVStore
	log *zap.Logger
}

func NewSessionRepository(kv database.KVStore, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		kv:  kv,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Save(ctx context.Context, user *entity.User) error {
	if err := saveJSON(ctx, r.kv, KeyCurrentUser, user.Public()); err != nil {
		r.log.Error("Failed to save session",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Current returns nil, nil when nobody is logged in.
func (r *sessionRepository) Current(ctx context.Context) (*entity.User, error) {
	var user entity.User
	found, err := loadJSON(ctx, r.kv, KeyCurrentUser, &user)
	if err != nil {
		var corrupt *CorruptValueError
		if errors.As(err, &corrupt) {
			r.log.Warn("Stored session is corrupt, ignoring", zap.Error(err))
			return nil, nil
		}
		r.log.Error("Failed to load session", zap.Error(err))
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyCurrentUser); err != nil {
		r.log.Error("Failed to clear session", zap.Error(err))
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
