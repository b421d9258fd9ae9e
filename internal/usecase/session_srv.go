package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"art-shop/internal/data/entity"
	"art-shop/internal/data/repository"
	"art-shop/internal/dto/request"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

// SessionService is the Session Store. It owns the current-user slot and
// never renders; callers run the presentation sync after each mutation.
type SessionService interface {
	Load(ctx context.Context) error
	Register(ctx context.Context, req *request.SignupRequest) (*entity.User, error)
	Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *entity.User
	// SaveCart writes items into the directory copy of the current user's
	// cart. It is the only way User.cart changes after registration.
	SaveCart(ctx context.Context, items []entity.CartItem) error
}

type sessionService struct {
	repo       *repository.Repository
	bcryptCost int
	log        *zap.Logger

	current *entity.User
}

func NewSessionService(repo *repository.Repository, config *utils.Config, log *zap.Logger) SessionService {
	return &sessionService{
		repo:       repo,
		bcryptCost: config.Session.BcryptCost,
		log:        log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) Load(ctx context.Context) error {
	user, err := s.repo.Session.Current(ctx)
	if err != nil {
		return fmt.Errorf("rehydrate session: %w", err)
	}
	s.current = user
	if user != nil {
		s.log.Info("Session restored", zap.String("email", user.Email))
	}
	return nil
}

func (s *sessionService) Register(ctx context.Context, req *request.SignupRequest) (*entity.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	req.ConfirmPassword = strings.TrimSpace(req.ConfirmPassword)

	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	// 2. Cek email sudah terdaftar
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	// 3. Hash password
	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now().UTC(),
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Cart:         []entity.CartItem{},
	}

	// 4. Simpan ke directory
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	// 5. Auto login setelah register
	if err := s.repo.Session.Save(ctx, user); err != nil {
		return nil, err
	}
	s.current = user.Public()

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.current.Public(), nil
}

func (s *sessionService) Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.Session.Save(ctx, user); err != nil {
		return nil, err
	}
	s.current = user.Public()

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.current.Public(), nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.repo.Session.Clear(ctx); err != nil {
		return err
	}
	if s.current != nil {
		s.log.Info("User logged out", zap.String("email", s.current.Email))
	}
	s.current = nil
	return nil
}

func (s *sessionService) CurrentUser() *entity.User {
	return s.current.Public()
}

func (s *sessionService) SaveCart(ctx context.Context, items []entity.CartItem) error {
	if s.current == nil {
		return ErrNotAuthenticated
	}
	if err := s.repo.User.SaveCart(ctx, s.current.Email, items); err != nil {
		return err
	}
	s.current.Cart = entity.CloneItems(items)
	return nil
}
