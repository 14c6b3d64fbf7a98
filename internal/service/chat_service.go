package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gapgap-ai/internal/domain"
	"gapgap-ai/internal/llm"
	"gapgap-ai/internal/repository"
)

// Cantidad de mensajes del historial que se reenvían al modelo.
const historyWindow = 20

// ChatService maneja la lista de chats, el historial y el pipeline de envío.
type ChatService struct {
	logger   *zap.Logger
	chats    repository.ChatRepository
	messages repository.MessageRepository
	provider llm.Provider
	quota    QuotaLimiter
}

var (
	ErrChatNotConfigured = errors.New("chat service not configured")
	ErrChatInvalidInput  = errors.New("chat invalid input")
	ErrQuotaExceeded     = errors.New("daily message limit reached")
	ErrGenerationFailed  = errors.New("could not generate response")
)

func NewChatService(
	logger *zap.Logger,
	chats repository.ChatRepository,
	messages repository.MessageRepository,
	provider llm.Provider,
	quota QuotaLimiter,
) *ChatService {
	return &ChatService{
		logger:   logger,
		chats:    chats,
		messages: messages,
		provider: provider,
		quota:    quota,
	}
}

// List devuelve los chats del usuario en el orden del backend.
func (s *ChatService) List(ctx context.Context, userID string) ([]domain.Chat, error) {
	if s == nil || s.chats == nil {
		return nil, ErrChatNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrChatInvalidInput
	}
	return s.chats.ListByUserID(ctx, userID)
}

// History devuelve el historial completo de un chat en orden cronológico.
func (s *ChatService) History(ctx context.Context, chatID string) ([]domain.Message, error) {
	if s == nil || s.messages == nil {
		return nil, ErrChatNotConfigured
	}
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return nil, ErrChatInvalidInput
	}
	return s.messages.ListByChatID(ctx, chatID)
}

// Create crea un chat vacío para el usuario con el título por defecto.
func (s *ChatService) Create(ctx context.Context, userID string) (domain.Chat, error) {
	if s == nil || s.chats == nil {
		return domain.Chat{}, ErrChatNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Chat{}, ErrChatInvalidInput
	}

	now := time.Now().UTC()
	chat := domain.Chat{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     "Untitled",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return domain.Chat{}, err
	}
	return chat, nil
}

type SendResult struct {
	UserMessage      domain.Message
	AssistantMessage domain.Message
}

// Send persiste el mensaje del usuario, genera la respuesta del asistente con
// el historial reciente y la persiste. Si la generación falla, el mensaje del
// usuario se elimina para que el historial quede como antes del envío.
func (s *ChatService) Send(ctx context.Context, user domain.User, chatID, content string) (SendResult, error) {
	if s == nil || s.chats == nil || s.messages == nil || s.provider == nil {
		return SendResult{}, ErrChatNotConfigured
	}
	chatID = strings.TrimSpace(chatID)
	content = strings.TrimSpace(content)
	if user.ID == "" || chatID == "" || content == "" {
		return SendResult{}, ErrChatInvalidInput
	}

	if s.quota != nil && !s.quota.Allow(user.ID, user.SubscriptionPlan) {
		return SendResult{}, ErrQuotaExceeded
	}

	userMsg := domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      domain.RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return SendResult{}, fmt.Errorf("save user message: %w", err)
	}

	history, err := s.messages.ListRecentByChatID(ctx, chatID, historyWindow)
	if err != nil {
		return SendResult{}, fmt.Errorf("load history: %w", err)
	}

	reply, err := s.provider.Generate(ctx, history)
	if err != nil {
		// Mismo efecto que un rollback: el historial queda como antes.
		if delErr := s.messages.Delete(ctx, userMsg.ID); delErr != nil && s.logger != nil {
			s.logger.Warn("rollback user message failed", zap.Error(delErr), zap.String("message_id", userMsg.ID))
		}
		if s.logger != nil {
			s.logger.Error("generation failed", zap.Error(err), zap.String("chat_id", chatID))
		}
		return SendResult{}, ErrGenerationFailed
	}

	assistantMsg := domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      domain.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, assistantMsg); err != nil {
		return SendResult{}, fmt.Errorf("save assistant message: %w", err)
	}

	if err := s.chats.Touch(ctx, chatID, assistantMsg.CreatedAt); err != nil && s.logger != nil {
		s.logger.Warn("touch chat failed", zap.Error(err), zap.String("chat_id", chatID))
	}

	return SendResult{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}
