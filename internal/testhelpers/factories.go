// Package testhelpers provides fixtures shared by package tests.
package testhelpers

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
)

var cuisines = []string{"Italian", "Mexican", "Indian", "Thai", "French", "American"}

// RecipeFactory builds reproducible fake recipes.
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a factory seeded with seed.
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Recipe returns a normalized recipe with every optional field populated.
func (f *RecipeFactory) Recipe() model.Recipe {
	ingredients := make([]string, f.faker.Number(1, 6))
	for i := range ingredients {
		ingredients[i] = f.faker.Word()
	}
	steps := make(model.Steps, f.faker.Number(1, 5))
	for i := range steps {
		steps[i] = f.faker.Sentence(6)
	}

	r := model.Recipe{
		Title:       f.faker.Sentence(3),
		Ingredients: ingredients,
		Directions:  steps,
		Cuisine:     cuisines[f.faker.Number(0, len(cuisines)-1)],
		Dietary:     f.faker.RandomString([]string{"vegetarian", "vegan", "none"}),
		URL:         f.faker.URL(),
		Details:     map[string]string{"Servings:": f.faker.Digit()},
		NutritionFacts: map[string]string{
			"Calories": f.faker.DigitN(3),
		},
		AuthorInfo: &model.AuthorInfo{Name: f.faker.Name(), Link: f.faker.URL()},
		Tags:       []string{f.faker.Word(), f.faker.Word()},
	}
	r.Normalize(time.Now())
	return r
}

// Recipes returns n fake recipes.
func (f *RecipeFactory) Recipes(n int) []model.Recipe {
	out := make([]model.Recipe, n)
	for i := range out {
		out[i] = f.Recipe()
	}
	return out
}

// Word exposes the underlying faker for building queries.
func (f *RecipeFactory) Word() string {
	return f.faker.Word()
}

// ChickenSoup and VegCurry are the canonical two-recipe collection used by
// search examples.
func ChickenSoup() model.Recipe {
	r := model.Recipe{
		Title:       "Chicken Soup",
		Ingredients: []string{"chicken", "onion"},
		Directions:  model.Steps{"boil chicken", "add onion", "simmer"},
		Cuisine:     "American",
	}
	r.Normalize(time.Now())
	return r
}

func VegCurry() model.Recipe {
	r := model.Recipe{
		Title:       "Veg Curry",
		Ingredients: []string{"potato"},
		Directions:  model.Steps{"fry spices", "add potato"},
		Cuisine:     "Indian",
		Tags:        []string{"vegan", "spicy"},
	}
	r.Normalize(time.Now())
	return r
}
