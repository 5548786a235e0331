package service

import (
	"context"
	"errors"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
)

var (
	ErrInvalidRecipe         = errors.New("title, ingredients, and instructions are required")
	ErrMissingCredentials    = errors.New("email and password are required")
	ErrUserExists            = errors.New("user already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrIncorrectPassword     = errors.New("incorrect password")
	ErrClassifierUnavailable = errors.New("query classifier is not configured")
	ErrEmptyMessage          = errors.New("message must not be empty")
	ErrInvalidSession        = errors.New("invalid session id")
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Search(ctx context.Context, query string) ([]model.Recipe, error)
	Query(ctx context.Context, query string) ([]model.Recipe, search.Intent, error)
	Create(ctx context.Context, r *model.Recipe) (*model.Recipe, error)
	Seed(ctx context.Context, recipes []model.Recipe) (int, error)
}

// IAuthService defines the interface for account operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	AddFavorite(ctx context.Context, userID string, r model.Recipe) ([]model.Recipe, error)
	Favorites(ctx context.Context, userID string) ([]model.Recipe, error)
}

// IChatService defines the interface for chat sessions
type IChatService interface {
	Send(ctx context.Context, sessionID, text string) (*ChatResult, error)
	History(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	Clear(ctx context.Context, sessionID string) error
	Transcript(ctx context.Context, sessionID string) ([]byte, error)
	ShareTranscript(ctx context.Context, sessionID string) (string, error)
}
