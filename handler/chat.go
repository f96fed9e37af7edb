package handler

import (
	"net/http"

	"github.com/Nabz863/group17-freelance-sd-sub000/middleware"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	messages *service.MessageService
}

func NewChatHandler(messages *service.MessageService) *ChatHandler {
	return &ChatHandler{messages: messages}
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// Send posts a message into the project conversation and pushes it to the
// other party best-effort.
func (h *ChatHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	msg, err := h.messages.Send(c.Param("id"), middleware.GetUserID(c), middleware.GetRole(c), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// List returns the project conversation in chronological order.
func (h *ChatHandler) List(c *gin.Context) {
	messages, err := h.messages.List(c.Param("id"), middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
