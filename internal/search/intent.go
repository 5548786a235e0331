package search

import (
	"context"
	"fmt"
	"strings"
)

// Intent is the classified purpose of a query.
type Intent string

const (
	IntentIngredients Intent = "search_by_ingredients"
	IntentTitle       Intent = "search_by_title"
	IntentTag         Intent = "search_by_tag"
)

// Labels are the candidate labels sent to the classifier.
var Labels = []string{string(IntentIngredients), string(IntentTitle), string(IntentTag)}

// Classifier picks the most likely label for text.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (string, error)
}

// Router classifies queries and builds the matching filter.
type Router struct {
	classifier Classifier
	vocab      Vocabulary
}

// NewRouter creates a Router. A nil vocabulary falls back to DefaultVocabulary.
func NewRouter(classifier Classifier, vocab Vocabulary) *Router {
	if vocab == nil {
		vocab = DefaultVocabulary
	}
	return &Router{classifier: classifier, vocab: vocab}
}

// Route classifies query and returns the detected intent with its filter.
// Blank queries are not classified and match everything. A classifier failure
// is returned as is; there is no fallback to the plain substring search.
func (r *Router) Route(ctx context.Context, query string) (Intent, Filter, error) {
	if strings.TrimSpace(query) == "" {
		return "", Filter{}, nil
	}

	label, err := r.classifier.Classify(ctx, query, Labels)
	if err != nil {
		return "", Filter{}, fmt.Errorf("failed to classify query: %w", err)
	}

	intent := Intent(label)
	switch intent {
	case IntentIngredients:
		if terms := r.vocab.Extract(query); len(terms) > 0 {
			return intent, Filter{AllIngredients: terms}, nil
		}
	case IntentTitle:
		return intent, OnField(query, FieldTitle), nil
	case IntentTag:
		return intent, OnField(query, FieldTags), nil
	}
	return intent, Build(query), nil
}
