// Package api holds the HTTP handlers.
package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-chatbot/backend/internal/format"
	"github.com/pageza/recipe-chatbot/backend/internal/middleware"
	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/service"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the handlers call.
type Deps struct {
	Recipes service.IRecipeService
	Auth    service.IAuthService
	Chat    service.IChatService
	Store   Pinger
	// ExposeDetails adds the underlying error text to error envelopes.
	ExposeDetails bool
}

// SetupAPI registers every route on router.
func SetupAPI(router *gin.Engine, deps Deps) {
	NewHealthHandler(deps.Store).RegisterRoutes(router)

	api := router.Group("/api")
	{
		NewRecipeHandler(deps.Recipes, deps.ExposeDetails).RegisterRoutes(api)
		NewAuthHandler(deps.Auth, deps.ExposeDetails).RegisterRoutes(api)
		NewChatHandler(deps.Chat, deps.ExposeDetails).RegisterRoutes(api)
	}
}

// RecipeResult is a stored recipe together with its rendered text block.
type RecipeResult struct {
	model.Recipe
	Display format.Display `json:"display"`
}

func recipeResults(recipes []model.Recipe) []RecipeResult {
	out := make([]RecipeResult, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeResult{Recipe: r, Display: format.Recipe(r)}
	}
	return out
}

// MessageResponse is the body of writes that return no record.
type MessageResponse struct {
	Message string `json:"message"`
}

func fail(c *gin.Context, status int, message string, err error, expose bool) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, middleware.NewErrorResponse(message, err, expose))
}
