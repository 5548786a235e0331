package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/testhelpers"
)

func TestRecipeFullBlock(t *testing.T) {
	r := model.Recipe{
		Title:       " Pancakes ",
		Ingredients: []string{"flour", "milk", "egg"},
		Directions:  model.Steps{"mix", "rest", "fry", "serve"},
		Cuisine:     "French",
		URL:         "https://example.com/pancakes",
		Details:     map[string]string{"Servings:": "4", "Prep Time:": "10 mins"},
		NutritionFacts: map[string]string{
			"Protein":  "6g",
			"Calories": "220",
		},
		AuthorInfo: &model.AuthorInfo{Name: "Julia"},
		Tags:       []string{"breakfast", "sweet"},
	}

	want := "Title: Pancakes \n" +
		"Ingredients: flour, milk, egg \n" +
		"Details: Cuisine: French | Author: Julia | Servings: 4 \n" +
		"Directions: mix | rest | fry \n" +
		"URL: https://example.com/pancakes \n" +
		"Nutrition Facts: Calories: 220 | Protein: 6g \n" +
		"Tags: breakfast, sweet"
	assert.Equal(t, want, Recipe(r).Text())
}

func TestRecipePlaceholders(t *testing.T) {
	want := "Title: No Title \n" +
		"Ingredients: No Ingredients Found \n" +
		"Details: Cuisine: N/A | Author: N/A | Servings: N/A \n" +
		"Directions: No Instructions Found \n" +
		"URL: No URL Found \n" +
		"Nutrition Facts: No Nutrition Facts Found \n" +
		"Tags: No Tags Found"
	assert.Equal(t, want, Recipe(model.Recipe{}).Text())
}

func TestRecipeBlankValuesUsePlaceholders(t *testing.T) {
	d := Recipe(model.Recipe{
		Title:       "   ",
		Ingredients: []string{" ", ""},
		AuthorInfo:  &model.AuthorInfo{Name: " "},
		Tags:        []string{},
	})
	assert.Equal(t, NoTitle, d.Title)
	assert.Equal(t, NoIngredients, d.Ingredients)
	assert.Equal(t, NotAvailable, d.Author)
	assert.Equal(t, NoTags, d.Tags)
}

func TestRecipeLineOrder(t *testing.T) {
	text := Recipe(testhelpers.NewRecipeFactory(7).Recipe()).Text()
	lines := strings.Split(text, "\n")
	prefixes := []string{"Title: ", "Ingredients: ", "Details: Cuisine: ", "Directions: ", "URL: ", "Nutrition Facts: ", "Tags: "}

	assert.Len(t, lines, len(prefixes))
	for i, p := range prefixes {
		assert.True(t, strings.HasPrefix(lines[i], p), "line %d = %q", i, lines[i])
	}
}

func TestRecipes(t *testing.T) {
	assert.Equal(t, NoResults, Recipes(nil))

	soup, curry := testhelpers.ChickenSoup(), testhelpers.VegCurry()
	got := Recipes([]model.Recipe{soup, curry})

	assert.Equal(t, Recipe(soup).Text()+"\n\n"+Recipe(curry).Text(), got)
	assert.Equal(t, 2, len(strings.Split(got, "\n\n")))
}
