package repository

import (
	"context"
	"errors"
	"fmt"

	"art-shop/internal/data/entity"
	"art-shop/pkg/database"

	"go.uber.org/zap"
)

var ErrUserExists = errors.New("user already exists")

// UserRepository is the local user directory, stored as one JSON array.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	SaveCart(ctx context.Context, email string, items []entity.CartItem) error
	FindAll(ctx context.Context) ([]*entity.User, error)
}

type userRepository struct {
	kv  database.KVStore
	log *zap.Logger
}

func NewUserRepository(kv database.KVStore, log *zap.Logger) UserRepository {
	return &userRepository{
		kv:  kv,
		log: log.With(zap.String("repository", "user")),
	}
}

func (ur *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	if _, err := loadJSON(ctx, ur.kv, KeyUsers, &users); err != nil {
		var corrupt *CorruptValueError
		if errors.As(err, &corrupt) {
			ur.log.Warn("User directory is corrupt, treating as empty", zap.Error(err))
			return []*entity.User{}, nil
		}
		ur.log.Error("Failed to load user directory", zap.Error(err))
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	users, err := ur.FindAll(ctx)
	if err != nil {
		return err
	}

	key := entity.NormalizeEmail(user.Email)
	for _, u := range users {
		if entity.NormalizeEmail(u.Email) == key {
			return fmt.Errorf("create user %s: %w", user.Email, ErrUserExists)
		}
	}

	users = append(users, user)
	if err := saveJSON(ctx, ur.kv, KeyUsers, users); err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

// FindByEmail returns nil, nil when no user matches.
func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := ur.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	key := entity.NormalizeEmail(email)
	for _, u := range users {
		if entity.NormalizeEmail(u.Email) == key {
			return u, nil
		}
	}
	return nil, nil
}

func (ur *userRepository) SaveCart(ctx context.Context, email string, items []entity.CartItem) error {
	users, err := ur.FindAll(ctx)
	if err != nil {
		return err
	}

	key := entity.NormalizeEmail(email)
	found := false
	for _, u := range users {
		if entity.NormalizeEmail(u.Email) == key {
			u.Cart = entity.CloneItems(items)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("user %s not found", email)
	}

	if err := saveJSON(ctx, ur.kv, KeyUsers, users); err != nil {
		ur.log.Error("Failed to save user cart", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("save cart for %s: %w", email, err)
	}
	return nil
}
