package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hia/internal/domain"
	"hia/internal/port"
)

const chatSystemPrompt = `You are Health Insight Agent (HIA).

IMPORTANT: Always format your responses as clear, organized bullet points.
- Start with a brief 1-2 sentence introduction if needed
- Then break down information into bullet points using "•" or "-"
- Each point should be concise and focused on one key piece of information
- Use sub-bullets for additional details when needed
- End with a brief summary or recommendation if appropriate

Answer health-related questions clearly and safely.
Do not diagnose or prescribe medication.
Use simple, calm language.`

// ChatService manages conversations backed by the completion gateway.
type ChatService interface {
	CreateChat(ctx context.Context, userID uuid.UUID, title string) (*domain.Chat, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error)
	GetMessages(ctx context.Context, userID, chatID uuid.UUID) ([]domain.ChatMessage, error)
	SendMessage(ctx context.Context, userID, chatID uuid.UUID, content string) (*domain.ChatMessage, error)
	DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error
}

type chatService struct {
	chatRepo  port.ChatRepository
	completer port.ChatCompleter
	textModel string
}

// NewChatService creates a new ChatService implementation.
func NewChatService(chatRepo port.ChatRepository, completer port.ChatCompleter, textModel string) ChatService {
	return &chatService{chatRepo: chatRepo, completer: completer, textModel: textModel}
}

func (s *chatService) CreateChat(ctx context.Context, userID uuid.UUID, title string) (*domain.Chat, error) {
	if title == "" {
		title = "New Health Chat"
	}
	chat := &domain.Chat{UserID: userID, Title: title}
	if err := s.chatRepo.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *chatService) ListChats(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	return s.chatRepo.ListChats(ctx, userID)
}

func (s *chatService) GetMessages(ctx context.Context, userID, chatID uuid.UUID) ([]domain.ChatMessage, error) {
	if _, err := s.chatRepo.GetChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListMessages(ctx, chatID)
}

// SendMessage appends the user turn, assembles the full history for the
// model, and persists the assistant reply.
func (s *chatService) SendMessage(ctx context.Context, userID, chatID uuid.UUID, content string) (*domain.ChatMessage, error) {
	if _, err := s.chatRepo.GetChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	history, err := s.chatRepo.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.ChatMessage{ChatID: chatID, Role: domain.ChatRoleUser, Content: content}
	if err := s.chatRepo.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	messages := make([]port.Message, 0, len(history)+2)
	messages = append(messages, port.TextMessage("system", chatSystemPrompt))
	for _, m := range history {
		messages = append(messages, port.TextMessage(string(m.Role), m.Content))
	}
	messages = append(messages, port.TextMessage("user", content))

	reply, err := s.completer.Complete(ctx, s.textModel, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion", domain.ErrGenerationFailed)
	}

	assistantMsg := &domain.ChatMessage{ChatID: chatID, Role: domain.ChatRoleAssistant, Content: reply}
	if err := s.chatRepo.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}
	return assistantMsg, nil
}

func (s *chatService) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	return s.chatRepo.DeleteChat(ctx, userID, chatID)
}
