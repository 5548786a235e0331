package transcript

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
)

type fakeObjects struct {
	key         string
	contentType string
	body        []byte
	ttl         time.Duration
	putErr      error
}

func (f *fakeObjects) Put(_ context.Context, key, contentType string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.key, f.contentType, f.body = key, contentType, body
	return nil
}

func (f *fakeObjects) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.ttl = ttl
	return "https://bucket.example/" + key + "?signed", nil
}

var conversation = []model.ChatMessage{
	{Text: "chicken", Type: model.MessageUser},
	{Text: "Title: Chicken Soup \nIngredients: chicken, onion", Type: model.MessageBot},
}

func TestRender(t *testing.T) {
	doc, err := Render(conversation)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.True(t, bytes.Contains(doc, []byte("%%EOF")))
}

func TestRenderEmptyAndNonASCII(t *testing.T) {
	empty, err := Render(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))

	_, err = Render([]model.ChatMessage{{Text: "crème brûlée — 3 €", Type: model.MessageUser}})
	assert.NoError(t, err)
}

func TestShare(t *testing.T) {
	objects := &fakeObjects{}
	s := NewSharer(objects, 15*time.Minute)
	require.True(t, s.Enabled())

	url, err := s.Share(context.Background(), "01HSESSION", conversation)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(objects.key, "transcripts/01HSESSION/"))
	assert.True(t, strings.HasSuffix(objects.key, ".pdf"))
	assert.Equal(t, ContentType, objects.contentType)
	assert.True(t, bytes.HasPrefix(objects.body, []byte("%PDF-")))
	assert.Equal(t, 15*time.Minute, objects.ttl)
	assert.Equal(t, "https://bucket.example/"+objects.key+"?signed", url)
}

func TestShareDisabled(t *testing.T) {
	_, err := NewSharer(nil, time.Minute).Share(context.Background(), "s", conversation)
	assert.ErrorIs(t, err, ErrSharingDisabled)

	var nilSharer *Sharer
	assert.False(t, nilSharer.Enabled())
}

func TestShareUploadFailure(t *testing.T) {
	boom := errors.New("access denied")
	_, err := NewSharer(&fakeObjects{putErr: boom}, time.Minute).Share(context.Background(), "s", conversation)
	assert.ErrorIs(t, err, boom)
}
