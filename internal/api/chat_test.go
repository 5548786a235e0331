package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-chatbot/backend/internal/format"
	"github.com/pageza/recipe-chatbot/backend/internal/mocks"
	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/service"
	"github.com/pageza/recipe-chatbot/backend/internal/transcript"
)

func TestChatRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/chat", SendRequest{Message: "curry"})
	require.Equal(t, http.StatusOK, w.Code)
	var res service.ChatResult
	decode(t, w, &res)
	require.NotEmpty(t, res.SessionID)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, model.MessageUser, res.Messages[0].Type)
	assert.Contains(t, res.Messages[1].Text, "Title: Veg Curry")

	w = env.do(t, http.MethodPost, "/api/chat", SendRequest{SessionID: res.SessionID, Message: "lasagna"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/chat/"+res.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logged []model.ChatMessage
	decode(t, w, &logged)
	require.Len(t, logged, 4)
	assert.Equal(t, format.NoResults, logged[3].Text)

	w = env.do(t, http.MethodGet, "/api/chat/"+res.SessionID+"/transcript", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, transcript.ContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))

	w = env.do(t, http.MethodDelete, "/api/chat/"+res.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/chat/"+res.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestChatSearchFailure(t *testing.T) {
	st := new(mocks.MockRecipeStore)
	st.On("FindRecipes", mock.Anything, mock.Anything, 5).Return(nil, errBoom)

	w := newTestEnv(t, withRecipeStore(st)).do(t, http.MethodPost, "/api/chat", SendRequest{SessionID: "s1", Message: "soup"})
	require.Equal(t, http.StatusOK, w.Code)
	var res service.ChatResult
	decode(t, w, &res)
	assert.True(t, res.Failed)
	assert.Equal(t, format.SearchFailed, res.Messages[1].Text)
}

func TestChatValidation(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/chat", SendRequest{Message: "  "}).Code)
	assert.Equal(t, http.StatusBadRequest,
		env.do(t, http.MethodPost, "/api/chat", SendRequest{SessionID: "bad id", Message: "soup"}).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/chat/bad%20id", nil).Code)
}

func TestShareTranscriptDisabled(t *testing.T) {
	w := newTestEnv(t).do(t, http.MethodPost, "/api/chat/s1/transcript/share", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRenderTranscript(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/transcripts", TranscriptRequest{Messages: []model.ChatMessage{
		{Text: "soup", Type: model.MessageUser},
		{Text: format.NoResults, Type: model.MessageBot},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, transcript.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	w = env.do(t, http.MethodPost, "/api/transcripts", TranscriptRequest{Messages: []model.ChatMessage{
		{Text: "hi", Type: "system"},
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
