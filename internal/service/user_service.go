package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photodrive/internal/config"
	"photodrive/internal/domain"
	"photodrive/internal/platform/crypto"
	"photodrive/internal/store"
)

const minPasswordLength = 8

// UserService defines the interface for the identity provider: account
// creation and sign-in, yielding the JWT pair that carries the identity used
// by the folder access rules.
type UserService interface {
	SignUp(ctx context.Context, email, password string) (*domain.User, string, string, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, string, string, error)
}

// userService is the concrete implementation of the UserService interface.
type userService struct {
	userStore store.UserStore
	cfg       config.Config
	tokenSvc  crypto.TokenGenerator
	passSvc   crypto.PasswordManager
}

// NewUserService creates a new instance of the user service.
func NewUserService(
	userStore store.UserStore,
	cfg config.Config,
	ts crypto.TokenGenerator,
	ps crypto.PasswordManager,
) UserService {
	return &userService{
		userStore: userStore,
		cfg:       cfg,
		tokenSvc:  ts,
		passSvc:   ps,
	}
}

// SignUp handles the business logic for registering a new user.
func (s *userService) SignUp(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	if s.cfg.CreateAccountBlocked {
		return nil, "", "", errors.New("account creation is disabled")
	}
	if len(password) < minPasswordLength {
		return nil, "", "", ErrWeakPassword
	}

	// Check if the email is already registered.
	if _, err := s.userStore.FindByEmail(ctx, email); !errors.Is(err, store.ErrNotFound) {
		if err == nil {
			return nil, "", "", store.ErrConflict
		}
		return nil, "", "", err
	}

	hashedPassword, err := s.passSvc.Hash(password)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.tokenSvc.NewPair(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to create token pair: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

// SignIn handles the business logic for user authentication.
func (s *userService) SignIn(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userStore.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := s.passSvc.Compare(user.PasswordHash, password); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenSvc.NewPair(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to create token pair: %w", err)
	}

	return user, accessToken, refreshToken, nil
}
