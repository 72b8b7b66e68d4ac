package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hia/internal/service"
)

// ChatHandler handles the health-chat endpoints.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type createChatRequest struct {
	Title string `json:"title"`
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create handles POST /api/v1/chats
func (h *ChatHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	chat, err := h.chatService.CreateChat(c.Request.Context(), userID, req.Title)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, chat)
}

// List handles GET /api/v1/chats
func (h *ChatHandler) List(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	chats, err := h.chatService.ListChats(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, chats)
}

// Messages handles GET /api/v1/chats/:id/messages
func (h *ChatHandler) Messages(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid chat ID")
		return
	}

	messages, err := h.chatService.GetMessages(c.Request.Context(), userID, chatID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, messages)
}

// SendMessage handles POST /api/v1/chats/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid chat ID")
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	reply, err := h.chatService.SendMessage(c.Request.Context(), userID, chatID, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, reply)
}

// Delete handles DELETE /api/v1/chats/:id
func (h *ChatHandler) Delete(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid chat ID")
		return
	}

	if err := h.chatService.DeleteChat(c.Request.Context(), userID, chatID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "chat deleted"})
}
