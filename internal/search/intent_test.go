package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	label  string
	err    error
	calls  int
	labels []string
}

func (s *stubClassifier) Classify(_ context.Context, _ string, labels []string) (string, error) {
	s.calls++
	s.labels = labels
	return s.label, s.err
}

func TestVocabularyExtract(t *testing.T) {
	got := DefaultVocabulary.Extract("Something with Chicken, bell pepper and  rice... and more chicken!")
	assert.Equal(t, []string{"chicken", "bell pepper", "rice"}, got)
}

func TestVocabularyExtractIgnoresUnknownWords(t *testing.T) {
	assert.Empty(t, DefaultVocabulary.Extract("something quick for dinner"))
	assert.Empty(t, DefaultVocabulary.Extract(""))
}

func TestNewVocabularyNormalizes(t *testing.T) {
	v := NewVocabulary("  Olive   Oil ", "", "SALT")
	assert.True(t, v.Contains("olive oil"))
	assert.True(t, v.Contains("salt"))
	assert.Len(t, v, 2)
}

func TestRouteIngredients(t *testing.T) {
	c := &stubClassifier{label: string(IntentIngredients)}
	r := NewRouter(c, nil)

	intent, f, err := r.Route(context.Background(), "what can I make with chicken and onion")
	require.NoError(t, err)
	assert.Equal(t, IntentIngredients, intent)
	assert.Equal(t, []string{"chicken", "onion"}, f.AllIngredients)
	assert.False(t, f.HasTerm())
	assert.Equal(t, Labels, c.labels)
}

func TestRouteIngredientsWithoutKnownTermsFallsBackToSubstring(t *testing.T) {
	r := NewRouter(&stubClassifier{label: string(IntentIngredients)}, nil)

	_, f, err := r.Route(context.Background(), "quinoa")
	require.NoError(t, err)
	assert.Equal(t, Build("quinoa"), f)
}

func TestRouteTitleAndTag(t *testing.T) {
	_, f, err := NewRouter(&stubClassifier{label: string(IntentTitle)}, nil).Route(context.Background(), "lasagna")
	require.NoError(t, err)
	assert.Equal(t, []Field{FieldTitle}, f.Fields)

	_, f, err = NewRouter(&stubClassifier{label: string(IntentTag)}, nil).Route(context.Background(), "vegan")
	require.NoError(t, err)
	assert.Equal(t, []Field{FieldTags}, f.Fields)
}

func TestRouteUnknownLabel(t *testing.T) {
	intent, f, err := NewRouter(&stubClassifier{label: "other"}, nil).Route(context.Background(), "soup")
	require.NoError(t, err)
	assert.Equal(t, Intent("other"), intent)
	assert.Equal(t, Build("soup"), f)
}

func TestRouteBlankQuerySkipsClassifier(t *testing.T) {
	c := &stubClassifier{label: string(IntentTitle)}
	_, f, err := NewRouter(c, nil).Route(context.Background(), "  ")
	require.NoError(t, err)
	assert.True(t, f.IsZero())
	assert.Zero(t, c.calls)
}

func TestRouteClassifierFailureHasNoFallback(t *testing.T) {
	boom := errors.New("service unavailable")
	_, _, err := NewRouter(&stubClassifier{err: boom}, nil).Route(context.Background(), "soup")
	assert.ErrorIs(t, err, boom)
}
