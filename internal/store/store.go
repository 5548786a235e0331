// Package store defines the persistence contract shared by every recipe and
// user backend.
package store

import (
	"context"
	"errors"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// RecipeStore reads and writes recipes.
type RecipeStore interface {
	// FindRecipes returns at most limit recipes matching f in storage order.
	// A limit of zero or less means no limit.
	FindRecipes(ctx context.Context, f search.Filter, limit int) ([]model.Recipe, error)
	// CreateRecipe stores r. r must already be normalized.
	CreateRecipe(ctx context.Context, r *model.Recipe) error
	// InsertRecipes bulk loads recipes and returns how many were stored.
	InsertRecipes(ctx context.Context, recipes []model.Recipe) (int, error)
}

// UserStore reads and writes user accounts and their favorites.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	// AppendFavorite adds a snapshot of r to the user's favorites and returns
	// the full list. Favorites are never deduplicated.
	AppendFavorite(ctx context.Context, userID string, r model.Recipe) ([]model.Recipe, error)
}

// Store is a complete backend.
type Store interface {
	RecipeStore
	UserStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
