package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmassist-backend/internal/llm"
	"farmassist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the chat service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.respond)
}

type chatRequest struct {
	Message          string        `json:"message"`
	Language         string        `json:"language"`
	UserID           string        `json:"userId"`
	PreviousMessages []chatMessage `json:"previousMessages"`
}

type chatMessage struct {
	Content string `json:"content"`
	IsUser  bool   `json:"isUser"`
}

func (h *Handler) respond(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Message == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	history := make([]llm.Message, 0, len(req.PreviousMessages))
	for _, m := range req.PreviousMessages {
		history = append(history, llm.Message{Content: m.Content, FromUser: m.IsUser})
	}

	reply, err := h.Svc.Respond(c.Request.Context(), req.UserID, req.Message, req.Language, history)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate response", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"response": reply})
}
