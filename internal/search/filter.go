// Package search turns free-text chat queries into store filters.
package search

import (
	"strings"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
)

// Field names a searchable recipe attribute.
type Field string

const (
	FieldTitle       Field = "title"
	FieldIngredients Field = "ingredients"
	FieldCombined    Field = "combined"
	FieldTags        Field = "tags"
)

// DefaultFields are searched by a plain text query.
var DefaultFields = []Field{FieldTitle, FieldIngredients, FieldCombined}

// Filter is a store-independent recipe predicate.
//
// Term matches when it is a case-insensitive substring of any of Fields.
// AllIngredients matches when every entry equals (case-insensitively) some
// ingredient of the recipe. When both are set both must hold. The zero Filter
// matches every recipe.
type Filter struct {
	Term           string
	Fields         []Field
	AllIngredients []string
}

// Build translates a raw user query into a Filter. Empty or blank queries
// match everything; anything else is searched verbatim as a substring of the
// title, the ingredient list or the combined text.
func Build(query string) Filter {
	if strings.TrimSpace(query) == "" {
		return Filter{}
	}
	return Filter{Term: query, Fields: DefaultFields}
}

// OnField restricts a substring search to a single field.
func OnField(query string, field Field) Filter {
	if strings.TrimSpace(query) == "" {
		return Filter{}
	}
	return Filter{Term: query, Fields: []Field{field}}
}

// IsZero reports whether the filter matches every recipe.
func (f Filter) IsZero() bool {
	return !f.HasTerm() && len(f.AllIngredients) == 0
}

// HasTerm reports whether the substring part of the filter is active.
func (f Filter) HasTerm() bool {
	return f.Term != "" && len(f.Fields) > 0
}

// Matches evaluates the filter against a recipe in memory.
func (f Filter) Matches(r model.Recipe) bool {
	if f.HasTerm() && !f.matchesTerm(r) {
		return false
	}
	for _, want := range f.AllIngredients {
		if !hasIngredient(r.Ingredients, want) {
			return false
		}
	}
	return true
}

func (f Filter) matchesTerm(r model.Recipe) bool {
	term := strings.ToLower(f.Term)
	for _, field := range f.Fields {
		for _, value := range fieldValues(r, field) {
			if strings.Contains(strings.ToLower(value), term) {
				return true
			}
		}
	}
	return false
}

func fieldValues(r model.Recipe, field Field) []string {
	switch field {
	case FieldTitle:
		return []string{r.Title}
	case FieldIngredients:
		return r.Ingredients
	case FieldCombined:
		return []string{r.Combined}
	case FieldTags:
		return r.Tags
	}
	return nil
}

func hasIngredient(ingredients []string, want string) bool {
	for _, ing := range ingredients {
		if strings.EqualFold(strings.TrimSpace(ing), want) {
			return true
		}
	}
	return false
}
