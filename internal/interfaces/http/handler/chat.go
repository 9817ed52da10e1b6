package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesdesk/backend/internal/application/chat"
	"github.com/salesdesk/backend/internal/interfaces/http/dto"
)

// SessionIDHeader carries the chat session identifier
const SessionIDHeader = "X-Session-ID"

// ChatHandler handles the conversational endpoint. The dispatcher always
// produces a displayable envelope, so this handler returns 200 even when
// the underlying workflow failed; the envelope text explains the failure.
type ChatHandler struct {
	BaseHandler
	dispatcher *chat.Dispatcher
	sessions   *chat.SessionStore
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(dispatcher *chat.Dispatcher, sessions *chat.SessionStore) *ChatHandler {
	return &ChatHandler{
		dispatcher: dispatcher,
		sessions:   sessions,
	}
}

// RegisterRoutes registers chat routes
func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.Send)
	rg.GET("/chat/history", h.History)
}

type chatRequest struct {
	Message   string         `json:"message" binding:"required"`
	Workflow  string         `json:"workflow"`
	Context   map[string]any `json:"context"`
	SessionID string         `json:"session_id"`
}

// Send dispatches a chat message and returns the workflow envelope
func (h *ChatHandler) Send(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "message is required")
		return
	}

	session := h.sessions.Get(h.sessionID(c, req.SessionID))
	if _, err := session.Send(req.Message); err != nil {
		h.HandleError(c, err)
		return
	}

	env := h.dispatcher.Dispatch(c.Request.Context(), chat.Request{
		Message:  req.Message,
		Workflow: req.Workflow,
		Context:  req.Context,
	})

	if err := session.Resolve(env); err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, env)
}

// History returns the session transcript
func (h *ChatHandler) History(c *gin.Context) {
	session := h.sessions.Get(h.sessionID(c, c.Query("session_id")))
	h.Success(c, gin.H{"turns": session.Turns()})
}

func (h *ChatHandler) sessionID(c *gin.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if id := c.GetHeader(SessionIDHeader); id != "" {
		return id
	}
	return "default"
}
