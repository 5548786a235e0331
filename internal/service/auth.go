package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipe-chatbot/backend/config"
	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/store"
)

// AuthService handles registration, login and favorites.
//
// In plaintext mode passwords are stored and compared exactly as given, and
// Login hands back the stored record including the password. This matches the
// behaviour existing clients rely on and is not safe for real accounts.
type AuthService struct {
	users  store.UserStore
	mode   string
	logger *zap.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users store.UserStore, passwordMode string, logger *zap.Logger) *AuthService {
	if passwordMode == "" {
		passwordMode = config.PasswordPlaintext
	}
	return &AuthService{users: users, mode: passwordMode, logger: logger}
}

// Register creates a user with an empty favorites list.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	_, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	stored, err := s.storedPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  stored,
		Favorites: []model.Recipe{},
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login returns the stored user when the password matches.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.passwordMatches(user.Password, password) {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}

// AddFavorite appends a recipe snapshot to the user's favorites.
func (s *AuthService) AddFavorite(ctx context.Context, userID string, r model.Recipe) ([]model.Recipe, error) {
	favs, err := s.users.AppendFavorite(ctx, userID, r)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return favs, nil
}

// Favorites lists the user's saved recipes in the order they were added.
func (s *AuthService) Favorites(ctx context.Context, userID string) ([]model.Recipe, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Favorites == nil {
		return []model.Recipe{}, nil
	}
	return user.Favorites, nil
}

func (s *AuthService) storedPassword(password string) (string, error) {
	if s.mode != config.PasswordBcrypt {
		return password, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) passwordMatches(stored, given string) bool {
	if s.mode != config.PasswordBcrypt {
		return stored == given
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
}
