package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
	"github.com/pageza/recipe-chatbot/backend/internal/store"
)

// RecipeService handles recipe operations
type RecipeService struct {
	recipes store.RecipeStore
	router  *search.Router
	limit   int
	logger  *zap.Logger
	now     func() time.Time
}

// NewRecipeService creates a new RecipeService instance. router may be nil,
// in which case Query reports ErrClassifierUnavailable.
func NewRecipeService(recipes store.RecipeStore, router *search.Router, limit int, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		router:  router,
		limit:   limit,
		logger:  logger,
		now:     time.Now,
	}
}

// Search runs a plain substring search.
func (s *RecipeService) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	recipes, err := s.recipes.FindRecipes(ctx, search.Build(query), s.limit)
	if err != nil {
		s.logger.Error("Recipe search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return recipes, nil
}

// Query classifies the query before searching.
func (s *RecipeService) Query(ctx context.Context, query string) ([]model.Recipe, search.Intent, error) {
	if s.router == nil {
		return nil, "", ErrClassifierUnavailable
	}

	intent, filter, err := s.router.Route(ctx, query)
	if err != nil {
		s.logger.Error("Query classification failed", zap.String("query", query), zap.Error(err))
		return nil, "", err
	}

	recipes, err := s.recipes.FindRecipes(ctx, filter, s.limit)
	if err != nil {
		s.logger.Error("Recipe query failed", zap.String("intent", string(intent)), zap.Error(err))
		return nil, intent, err
	}
	return recipes, intent, nil
}

// Create validates and stores a new recipe.
func (s *RecipeService) Create(ctx context.Context, r *model.Recipe) (*model.Recipe, error) {
	if !r.Valid() {
		return nil, ErrInvalidRecipe
	}
	r.Normalize(s.now())

	if err := s.recipes.CreateRecipe(ctx, r); err != nil {
		s.logger.Error("Failed to create recipe", zap.String("title", r.Title), zap.Error(err))
		return nil, err
	}
	return r, nil
}

// Seed normalizes and bulk loads recipes, skipping entries that lack the
// required fields.
func (s *RecipeService) Seed(ctx context.Context, recipes []model.Recipe) (int, error) {
	now := s.now()
	valid := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !r.Valid() {
			s.logger.Warn("Skipping invalid recipe", zap.String("title", r.Title))
			continue
		}
		r.Normalize(now)
		valid = append(valid, r)
	}

	n, err := s.recipes.InsertRecipes(ctx, valid)
	if err != nil {
		return n, fmt.Errorf("seeded %d of %d recipes: %w", n, len(valid), err)
	}
	return n, nil
}
