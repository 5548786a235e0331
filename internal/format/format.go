// Package format renders recipes as the fixed-order text blocks shown in chat.
package format

import (
	"sort"
	"strings"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
)

const (
	NoTitle          = "No Title"
	NoIngredients    = "No Ingredients Found"
	NotAvailable     = "N/A"
	NoInstructions   = "No Instructions Found"
	NoURL            = "No URL Found"
	NoNutritionFacts = "No Nutrition Facts Found"
	NoTags           = "No Tags Found"

	// NoResults is the chat reply for an empty result set.
	NoResults = "No recipes found."
	// SearchFailed is the chat reply when the search itself fails.
	SearchFailed = "Error fetching recipes."

	servingsKey   = "Servings:"
	maxDirections = 3
)

// Display holds the rendered value of every line of a recipe block.
type Display struct {
	Title          string `json:"title"`
	Ingredients    string `json:"ingredients"`
	Cuisine        string `json:"cuisine"`
	Author         string `json:"author"`
	Servings       string `json:"servings"`
	Directions     string `json:"directions"`
	URL            string `json:"url"`
	NutritionFacts string `json:"nutrition_facts"`
	Tags           string `json:"tags"`
}

// Recipe renders r, substituting placeholders for missing values.
func Recipe(r model.Recipe) Display {
	d := Display{
		Title:          orDefault(r.Title, NoTitle),
		Ingredients:    joinOr(r.Ingredients, ", ", NoIngredients),
		Cuisine:        orDefault(r.Cuisine, NotAvailable),
		Author:         NotAvailable,
		Servings:       orDefault(r.Details[servingsKey], NotAvailable),
		Directions:     joinOr(firstN(r.Directions, maxDirections), " | ", NoInstructions),
		URL:            orDefault(r.URL, NoURL),
		NutritionFacts: nutrition(r.NutritionFacts),
		Tags:           joinOr(r.Tags, ", ", NoTags),
	}
	if r.AuthorInfo != nil {
		d.Author = orDefault(r.AuthorInfo.Name, NotAvailable)
	}
	return d
}

// Text returns the block in its wire form.
func (d Display) Text() string {
	var b strings.Builder
	b.WriteString("Title: " + d.Title + " \n")
	b.WriteString("Ingredients: " + d.Ingredients + " \n")
	b.WriteString("Details: Cuisine: " + d.Cuisine + " | Author: " + d.Author + " | Servings: " + d.Servings + " \n")
	b.WriteString("Directions: " + d.Directions + " \n")
	b.WriteString("URL: " + d.URL + " \n")
	b.WriteString("Nutrition Facts: " + d.NutritionFacts + " \n")
	b.WriteString("Tags: " + d.Tags)
	return b.String()
}

// Join separates blocks with a blank line.
func Join(blocks []string) string {
	return strings.Join(blocks, "\n\n")
}

// Recipes renders a result set as a single chat reply.
func Recipes(recipes []model.Recipe) string {
	if len(recipes) == 0 {
		return NoResults
	}
	blocks := make([]string, len(recipes))
	for i, r := range recipes {
		blocks[i] = Recipe(r).Text()
	}
	return Join(blocks)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func joinOr(items []string, sep, def string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			parts = append(parts, it)
		}
	}
	if len(parts) == 0 {
		return def
	}
	return strings.Join(parts, sep)
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func nutrition(facts map[string]string) string {
	if len(facts) == 0 {
		return NoNutritionFacts
	}
	keys := make([]string, 0, len(facts))
	for k := range facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.TrimSpace(k)+": "+strings.TrimSpace(facts[k]))
	}
	return strings.Join(parts, " | ")
}
