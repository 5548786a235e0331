package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/service"
	"github.com/pageza/recipe-chatbot/backend/internal/transcript"
)

type ChatHandler struct {
	chat   service.IChatService
	expose bool
}

func NewChatHandler(chat service.IChatService, exposeDetails bool) *ChatHandler {
	return &ChatHandler{chat: chat, expose: exposeDetails}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	{
		chat.POST("", h.Send)
		chat.GET("/:sessionId", h.History)
		chat.DELETE("/:sessionId", h.Clear)
		chat.GET("/:sessionId/transcript", h.Transcript)
		chat.POST("/:sessionId/transcript/share", h.ShareTranscript)
	}
	router.POST("/transcripts", h.RenderTranscript)
}

type SendRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type TranscriptRequest struct {
	Messages []model.ChatMessage `json:"messages"`
}

type ShareResponse struct {
	URL string `json:"url"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err, h.expose)
		return
	}

	result, err := h.chat.Send(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.sessionError(c, err, "Error sending message")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ChatHandler) History(c *gin.Context) {
	msgs, err := h.chat.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.sessionError(c, err, "Error fetching chat history")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) Clear(c *gin.Context) {
	if err := h.chat.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
		h.sessionError(c, err, "Error clearing chat history")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Chat history cleared"})
}

func (h *ChatHandler) Transcript(c *gin.Context) {
	sessionID := c.Param("sessionId")
	doc, err := h.chat.Transcript(c.Request.Context(), sessionID)
	if err != nil {
		h.sessionError(c, err, "Error rendering transcript")
		return
	}
	pdf(c, doc, sessionID)
}

func (h *ChatHandler) ShareTranscript(c *gin.Context) {
	url, err := h.chat.ShareTranscript(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, transcript.ErrSharingDisabled) {
			fail(c, http.StatusServiceUnavailable, "Transcript sharing is not available", err, h.expose)
			return
		}
		h.sessionError(c, err, "Error sharing transcript")
		return
	}
	c.JSON(http.StatusOK, ShareResponse{URL: url})
}

// RenderTranscript turns a client-held log into a PDF without touching the
// stored history.
func (h *ChatHandler) RenderTranscript(c *gin.Context) {
	var req TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err, h.expose)
		return
	}
	for i, m := range req.Messages {
		if !m.Type.Valid() {
			fail(c, http.StatusBadRequest, fmt.Sprintf("Message %d has unknown type %q", i, m.Type), nil, h.expose)
			return
		}
	}

	doc, err := transcript.Render(req.Messages)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Error rendering transcript", err, h.expose)
		return
	}
	pdf(c, doc, "chat")
}

func (h *ChatHandler) sessionError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		fail(c, http.StatusBadRequest, "Message is required", nil, h.expose)
	case errors.Is(err, service.ErrInvalidSession):
		fail(c, http.StatusBadRequest, "Invalid session id", nil, h.expose)
	default:
		fail(c, http.StatusInternalServerError, message, err, h.expose)
	}
}

func pdf(c *gin.Context, doc []byte, name string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-transcript.pdf"`, name))
	c.Data(http.StatusOK, transcript.ContentType, doc)
}
