// Package memory is an in-process store. It backs the static-file deployment
// and is the reference implementation in tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
	"github.com/pageza/recipe-chatbot/backend/internal/store"
)

// Store keeps recipes and users in memory, in insertion order.
type Store struct {
	mu      sync.RWMutex
	recipes []model.Recipe
	users   []*model.User
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// LoadFile returns a store seeded from a JSON array of recipes.
func LoadFile(path string) (*Store, error) {
	recipes, err := ReadRecipes(path)
	if err != nil {
		return nil, err
	}
	s := New()
	if _, err := s.InsertRecipes(context.Background(), recipes); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadRecipes parses a JSON recipe file and normalizes every entry.
func ReadRecipes(path string) ([]model.Recipe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes file: %w", err)
	}
	var recipes []model.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes file %s: %w", path, err)
	}
	now := time.Now()
	for i := range recipes {
		recipes[i].Normalize(now)
	}
	return recipes, nil
}

func (s *Store) FindRecipes(_ context.Context, f search.Filter, limit int) ([]model.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Recipe{}
	for _, r := range s.recipes {
		if limit > 0 && len(out) >= limit {
			break
		}
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) CreateRecipe(_ context.Context, r *model.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.recipes {
		if existing.ID == r.ID {
			return fmt.Errorf("recipe %s: %w", r.ID, store.ErrDuplicate)
		}
	}
	s.recipes = append(s.recipes, *r)
	return nil
}

func (s *Store) InsertRecipes(ctx context.Context, recipes []model.Recipe) (int, error) {
	for i := range recipes {
		if err := s.CreateRecipe(ctx, &recipes[i]); err != nil {
			return i, err
		}
	}
	return len(recipes), nil
}

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("user %s: %w", u.Email, store.ErrDuplicate)
		}
	}
	cp := *u
	s.users = append(s.users, &cp)
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.userByID(id); u != nil {
		return copyUser(u), nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) AppendFavorite(_ context.Context, userID string, r model.Recipe) ([]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(userID)
	if u == nil {
		return nil, store.ErrNotFound
	}
	u.Favorites = append(u.Favorites, r)
	return append([]model.Recipe{}, u.Favorites...), nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close(context.Context) error {
	return nil
}

func (s *Store) userByID(id string) *model.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func copyUser(u *model.User) *model.User {
	cp := *u
	cp.Favorites = append([]model.Recipe{}, u.Favorites...)
	return &cp
}
