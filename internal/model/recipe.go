package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Steps is an ordered list of preparation steps. Some recipe sources store the
// directions as one block of text, so a JSON string is accepted as well and is
// split into one step per non-empty line.
type Steps []string

func (s *Steps) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}

	// Try to unmarshal as a list first
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = Steps(list)
		return nil
	}

	var block string
	if err := json.Unmarshal(data, &block); err == nil {
		*s = splitLines(block)
		return nil
	}

	return fmt.Errorf("invalid steps format: expected string or list of strings")
}

func splitLines(block string) Steps {
	var steps Steps
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// AuthorInfo describes who published a recipe.
type AuthorInfo struct {
	Name string `json:"name,omitempty" bson:"name,omitempty"`
	Link string `json:"link,omitempty" bson:"link,omitempty"`
	Bio  string `json:"bio,omitempty" bson:"bio,omitempty"`
}

// Recipe is the canonical recipe document.
type Recipe struct {
	ID             string            `json:"id" bson:"_id"`
	Title          string            `json:"title" bson:"title"`
	Ingredients    []string          `json:"ingredients" bson:"ingredients"`
	Directions     Steps             `json:"directions" bson:"directions"`
	Cuisine        string            `json:"cuisine,omitempty" bson:"cuisine,omitempty"`
	Dietary        string            `json:"dietary,omitempty" bson:"dietary,omitempty"`
	URL            string            `json:"url,omitempty" bson:"url,omitempty"`
	Details        map[string]string `json:"details,omitempty" bson:"details,omitempty"`
	NutritionFacts map[string]string `json:"nutrition_facts,omitempty" bson:"nutrition_facts,omitempty"`
	AuthorInfo     *AuthorInfo       `json:"author_info,omitempty" bson:"author_info,omitempty"`
	Tags           []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	Combined       string            `json:"combined,omitempty" bson:"combined,omitempty"`
	UpdateDate     string            `json:"update_date,omitempty" bson:"update_date,omitempty"`
}

// Normalize fills in the fields a stored recipe must carry: an identifier,
// the combined search text and the update date.
func (r *Recipe) Normalize(now time.Time) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Combined == "" {
		r.Combined = r.CombinedText()
	}
	if r.UpdateDate == "" {
		r.UpdateDate = now.Format("2006-01-02")
	}
}

// Valid reports whether the recipe carries a title, at least one ingredient
// and at least one step.
func (r *Recipe) Valid() bool {
	return strings.TrimSpace(r.Title) != "" && hasText(r.Ingredients) && hasText(r.Directions)
}

func hasText(items []string) bool {
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			return true
		}
	}
	return false
}

// CombinedText concatenates the searchable attributes of the recipe.
func (r *Recipe) CombinedText() string {
	parts := []string{r.Title}
	parts = append(parts, r.Ingredients...)
	parts = append(parts, r.Directions...)
	parts = append(parts, r.Cuisine, r.Dietary)
	parts = append(parts, r.Tags...)

	var b strings.Builder
	for _, p := range parts {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return strings.ToLower(b.String())
}
