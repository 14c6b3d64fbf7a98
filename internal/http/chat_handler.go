package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gapgap-ai/internal/domain"
	"gapgap-ai/internal/repository"
	"gapgap-ai/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints de chats y mensajes.
type ChatHandler struct {
	logger   *zap.Logger
	users    repository.UserRepository
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, users repository.UserRepository, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		users:    users,
		chatServ: chatServ,
	}
}

// Get maneja GET /chat. Con chatId devuelve historial; sin chatId, la lista.
func (h *ChatHandler) Get(c *gin.Context) {
	userID := c.Query("userId")
	chatID := c.Query("chatId")

	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	if chatID != "" {
		messages, err := h.chatServ.History(c.Request.Context(), chatID)
		if err != nil {
			h.logger.Error("load history failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load messages"})
			return
		}
		if messages == nil {
			messages = []domain.Message{}
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
		return
	}

	chats, err := h.chatServ.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list chats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load chats"})
		return
	}
	if chats == nil {
		chats = []domain.Chat{}
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// Post maneja POST /chat. El body lleva action: "create" o "send".
func (h *ChatHandler) Post(c *gin.Context) {
	var req struct {
		Action  string `json:"action"`
		UserID  string `json:"userId"`
		ChatID  string `json:"chatId"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Action == "" {
		req.Action = "send"
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	switch req.Action {
	case "create":
		chat, err := h.chatServ.Create(c.Request.Context(), req.UserID)
		if err != nil {
			h.logger.Error("create chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create chat"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"chat": chat})

	case "send":
		if req.ChatID == "" || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId and message required"})
			return
		}
		user, err := h.users.GetByID(c.Request.Context(), req.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			h.logger.Error("load user failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
			return
		}

		result, err := h.chatServ.Send(c.Request.Context(), user, req.ChatID, req.Message)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrChatInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": "chatId and message required"})
			case errors.Is(err, service.ErrQuotaExceeded):
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily message limit reached"})
			default:
				h.logger.Error("send failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate response"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"userMessage":      result.UserMessage,
			"assistantMessage": result.AssistantMessage,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}
