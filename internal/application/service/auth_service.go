package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/finance-tracker/internal/domain/entity"
	"github.com/finbook/finance-tracker/internal/domain/repository"
	"github.com/finbook/finance-tracker/internal/infrastructure/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login
type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
	logger logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, tokens *TokenService, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: log,
	}
}

// Register creates a new user with a hashed password. Fails with
// entity.ErrDuplicateUser when the name is already taken.
func (s *AuthService) Register(ctx context.Context, name, password string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, err)
	}

	if _, err := s.users.Store(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"name":    user.Name,
	})

	return user, nil
}

// Login authenticates a user and returns a signed session token. An unknown
// name and a wrong password both fail with entity.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, name, password string) (string, error) {
	user, err := s.users.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", entity.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entity.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"name":    user.Name,
	})

	return token, nil
}

// Verify checks a session token and confirms the identity it names still
// exists. A token for an unknown user fails like any other invalid token.
func (s *AuthService) Verify(ctx context.Context, token string) (string, error) {
	userID, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return "", err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", entity.ErrInvalidToken
		}
		return "", err
	}

	return userID, nil
}
