package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/pageza/recipe-chatbot/backend/internal/format"
	"github.com/pageza/recipe-chatbot/backend/internal/history"
	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/transcript"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ChatResult is the outcome of one send: the user message followed by the
// bot reply, or the error placeholder when the search failed.
type ChatResult struct {
	SessionID string              `json:"sessionId"`
	Messages  []model.ChatMessage `json:"messages"`
	Failed    bool                `json:"failed"`
}

// ChatService runs chat turns against the recipe search.
type ChatService struct {
	recipes IRecipeService
	history history.Store
	sharer  *transcript.Sharer
	logger  *zap.Logger
	newID   func() string
}

// NewChatService creates a ChatService. sharer may be nil.
func NewChatService(recipes IRecipeService, hist history.Store, sharer *transcript.Sharer, logger *zap.Logger) *ChatService {
	return &ChatService{
		recipes: recipes,
		history: hist,
		sharer:  sharer,
		logger:  logger,
		newID:   func() string { return ulid.Make().String() },
	}
}

// Send records the user message, searches and records the reply. A search
// failure is reported in the result, not as an error.
func (s *ChatService) Send(ctx context.Context, sessionID, text string) (*ChatResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = s.newID()
	} else if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}

	userMsg := model.ChatMessage{Text: text, Type: model.MessageUser}
	s.record(ctx, sessionID, userMsg)

	result := &ChatResult{SessionID: sessionID}
	reply := model.ChatMessage{Type: model.MessageBot}

	recipes, err := s.recipes.Search(ctx, text)
	if err != nil {
		reply.Text = format.SearchFailed
		result.Failed = true
	} else {
		reply.Text = format.Recipes(recipes)
	}
	s.record(ctx, sessionID, reply)

	result.Messages = []model.ChatMessage{userMsg, reply}
	return result, nil
}

// History returns the stored log of a session.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}
	return s.history.List(ctx, sessionID)
}

// Clear drops a session log.
func (s *ChatService) Clear(ctx context.Context, sessionID string) error {
	if !ValidSessionID(sessionID) {
		return ErrInvalidSession
	}
	return s.history.Clear(ctx, sessionID)
}

// Transcript renders the stored log of a session as a PDF.
func (s *ChatService) Transcript(ctx context.Context, sessionID string) ([]byte, error) {
	msgs, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return transcript.Render(msgs)
}

// ShareTranscript uploads the rendered log and returns a download link.
func (s *ChatService) ShareTranscript(ctx context.Context, sessionID string) (string, error) {
	if !s.sharer.Enabled() {
		return "", transcript.ErrSharingDisabled
	}
	msgs, err := s.History(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return s.sharer.Share(ctx, sessionID, msgs)
}

// record appends to the history side-channel. Failures are logged only.
func (s *ChatService) record(ctx context.Context, sessionID string, msg model.ChatMessage) {
	if err := s.history.Append(ctx, sessionID, msg); err != nil {
		s.logger.Warn("Failed to record chat message",
			zap.String("session_id", sessionID),
			zap.String("type", string(msg.Type)),
			zap.Error(err),
		)
	}
}

// ValidSessionID reports whether id can be used as a session key.
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}
