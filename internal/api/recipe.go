package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/service"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	expose  bool
}

func NewRecipeHandler(recipes service.IRecipeService, exposeDetails bool) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, expose: exposeDetails}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes", h.SearchRecipes)
	router.POST("/recipes", h.CreateRecipe)
	router.POST("/query", h.QueryRecipes)
}

// CreateRecipeRequest accepts the directions under either name. Both may be a
// list of steps or one block of text.
type CreateRecipeRequest struct {
	Title          string            `json:"title"`
	Ingredients    []string          `json:"ingredients"`
	Instructions   model.Steps       `json:"instructions"`
	Directions     model.Steps       `json:"directions"`
	Cuisine        string            `json:"cuisine"`
	Dietary        string            `json:"dietary"`
	URL            string            `json:"url"`
	Details        map[string]string `json:"details"`
	NutritionFacts map[string]string `json:"nutrition_facts"`
	AuthorInfo     *model.AuthorInfo `json:"author_info"`
	Tags           []string          `json:"tags"`
}

func (req CreateRecipeRequest) recipe() *model.Recipe {
	steps := req.Instructions
	if len(steps) == 0 {
		steps = req.Directions
	}
	return &model.Recipe{
		Title:          req.Title,
		Ingredients:    req.Ingredients,
		Directions:     steps,
		Cuisine:        req.Cuisine,
		Dietary:        req.Dietary,
		URL:            req.URL,
		Details:        req.Details,
		NutritionFacts: req.NutritionFacts,
		AuthorInfo:     req.AuthorInfo,
		Tags:           req.Tags,
	}
}

type QueryRequest struct {
	Query string `json:"query"`
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	recipes, err := h.recipes.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error fetching recipes", err, h.expose)
		return
	}
	c.JSON(http.StatusOK, recipeResults(recipes))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err, h.expose)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), req.recipe())
	if err != nil {
		if errors.Is(err, service.ErrInvalidRecipe) {
			fail(c, http.StatusBadRequest, "Title, ingredients, and instructions are required", nil, h.expose)
			return
		}
		fail(c, http.StatusInternalServerError, "Error adding recipe", err, h.expose)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) QueryRecipes(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err, h.expose)
		return
	}

	recipes, _, err := h.recipes.Query(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, service.ErrClassifierUnavailable) {
			fail(c, http.StatusServiceUnavailable, "Query classification is not available", err, h.expose)
			return
		}
		fail(c, http.StatusInternalServerError, "Error processing query", err, h.expose)
		return
	}
	c.JSON(http.StatusOK, recipeResults(recipes))
}
