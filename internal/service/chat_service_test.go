package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hia/internal/domain"
	"hia/internal/port"
	"hia/internal/service"
	"hia/mocks"
)

const chatTestModel = "test/text-model"

func TestChatService_CreateChat_DefaultTitle(t *testing.T) {
	chatRepo := new(mocks.MockChatRepo)
	completer := new(mocks.MockChatCompleter)
	svc := service.NewChatService(chatRepo, completer, chatTestModel)

	chatRepo.On("CreateChat", mock.Anything, mock.Anything).Return(nil)

	chat, err := svc.CreateChat(context.Background(), uuid.New(), "")

	require.NoError(t, err)
	assert.Equal(t, "New Health Chat", chat.Title)
}

func TestChatService_SendMessage_FullConversationSent(t *testing.T) {
	chatRepo := new(mocks.MockChatRepo)
	completer := new(mocks.MockChatCompleter)
	svc := service.NewChatService(chatRepo, completer, chatTestModel)

	userID := uuid.New()
	chatID := uuid.New()
	chat := &domain.Chat{ID: chatID, UserID: userID, Title: "t"}
	history := []domain.ChatMessage{
		{ChatID: chatID, Role: domain.ChatRoleUser, Content: "what is HbA1c?"},
		{ChatID: chatID, Role: domain.ChatRoleAssistant, Content: "• A 3-month average of blood sugar"},
	}

	chatRepo.On("GetChat", mock.Anything, userID, chatID).Return(chat, nil)
	chatRepo.On("ListMessages", mock.Anything, chatID).Return(history, nil)
	chatRepo.On("AppendMessage", mock.Anything, mock.Anything).Return(nil)

	var gotMessages []port.Message
	completer.On("Complete", mock.Anything, chatTestModel, mock.Anything).
		Run(func(args mock.Arguments) {
			gotMessages = args.Get(2).([]port.Message)
		}).
		Return("• Aim for under 5.7 percent", nil)

	reply, err := svc.SendMessage(context.Background(), userID, chatID, "what level is healthy?")

	require.NoError(t, err)
	assert.Equal(t, domain.ChatRoleAssistant, reply.Role)
	assert.Equal(t, "• Aim for under 5.7 percent", reply.Content)

	// system prompt, two history turns, new user turn
	require.Len(t, gotMessages, 4)
	assert.Equal(t, "system", gotMessages[0].Role)
	assert.Equal(t, "user", gotMessages[1].Role)
	assert.Equal(t, "assistant", gotMessages[2].Role)
	assert.Equal(t, "what level is healthy?", gotMessages[3].Content)

	chatRepo.AssertNumberOfCalls(t, "AppendMessage", 2)
}

func TestChatService_SendMessage_OwnershipEnforced(t *testing.T) {
	chatRepo := new(mocks.MockChatRepo)
	completer := new(mocks.MockChatCompleter)
	svc := service.NewChatService(chatRepo, completer, chatTestModel)

	userID := uuid.New()
	chatID := uuid.New()
	chatRepo.On("GetChat", mock.Anything, userID, chatID).Return(nil, domain.ErrChatNotFound)

	_, err := svc.SendMessage(context.Background(), userID, chatID, "hello")

	assert.ErrorIs(t, err, domain.ErrChatNotFound)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatService_SendMessage_CompletionFailure(t *testing.T) {
	chatRepo := new(mocks.MockChatRepo)
	completer := new(mocks.MockChatCompleter)
	svc := service.NewChatService(chatRepo, completer, chatTestModel)

	userID := uuid.New()
	chatID := uuid.New()
	chat := &domain.Chat{ID: chatID, UserID: userID}

	chatRepo.On("GetChat", mock.Anything, userID, chatID).Return(chat, nil)
	chatRepo.On("ListMessages", mock.Anything, chatID).Return([]domain.ChatMessage{}, nil)
	chatRepo.On("AppendMessage", mock.Anything, mock.Anything).Return(nil)
	completer.On("Complete", mock.Anything, chatTestModel, mock.Anything).
		Return("", errors.New("upstream down"))

	_, err := svc.SendMessage(context.Background(), userID, chatID, "hello")

	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	// Only the user turn was persisted; no assistant message without a reply.
	chatRepo.AssertNumberOfCalls(t, "AppendMessage", 1)
}
