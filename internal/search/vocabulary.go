package search

import (
	"strings"
	"unicode"
)

// Vocabulary is a closed set of ingredient names recognised in queries.
// Entries are lower case and may be one or two words long.
type Vocabulary map[string]struct{}

// NewVocabulary builds a vocabulary from the given terms.
func NewVocabulary(terms ...string) Vocabulary {
	v := make(Vocabulary, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.Join(strings.Fields(t), " "))
		if t != "" {
			v[t] = struct{}{}
		}
	}
	return v
}

// Contains reports whether term is a known ingredient.
func (v Vocabulary) Contains(term string) bool {
	_, ok := v[strings.ToLower(term)]
	return ok
}

// Extract returns the known ingredients mentioned in query, in the order they
// appear and without duplicates. Two-word names win over their parts.
func (v Vocabulary) Extract(query string) []string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var found []string
	seen := make(map[string]bool)
	add := func(term string) {
		if !seen[term] {
			seen[term] = true
			found = append(found, term)
		}
	}

	for i := 0; i < len(words); i++ {
		if i+1 < len(words) {
			if pair := words[i] + " " + words[i+1]; v.Contains(pair) {
				add(pair)
				i++
				continue
			}
		}
		if v.Contains(words[i]) {
			add(words[i])
		}
	}
	return found
}

// DefaultVocabulary lists the ingredient names the query router understands.
var DefaultVocabulary = NewVocabulary(
	"apple", "avocado", "bacon", "banana", "basil", "bean", "beans", "beef",
	"bell pepper", "black pepper", "bread", "broccoli", "brown sugar", "butter",
	"cabbage", "carrot", "carrots", "cauliflower", "celery", "cheddar", "cheese",
	"chicken", "chickpeas", "chili", "chocolate", "cilantro", "cinnamon",
	"coconut milk", "corn", "cream", "cucumber", "cumin", "egg", "eggs",
	"flour", "garlic", "ginger", "ham", "honey", "kale", "lamb", "lemon",
	"lentils", "lettuce", "lime", "milk", "mushroom", "mushrooms", "mustard",
	"noodles", "oats", "olive oil", "onion", "onions", "orange", "oregano",
	"parmesan", "parsley", "pasta", "peanut butter", "peas", "pepper", "pork",
	"potato", "potatoes", "rice", "salmon", "salt", "sausage", "shrimp",
	"soy sauce", "spinach", "strawberry", "sugar", "sweet potato", "thyme",
	"tofu", "tomato", "tomatoes", "tuna", "turkey", "vanilla", "vinegar",
	"water", "yogurt", "zucchini",
)
