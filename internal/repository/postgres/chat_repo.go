package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hia/internal/domain"
	"hia/internal/port"
)

type chatRepo struct {
	db *sqlx.DB
}

// NewChatRepo creates a new PostgreSQL-backed ChatRepository.
func NewChatRepo(db *sqlx.DB) port.ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) CreateChat(ctx context.Context, chat *domain.Chat) error {
	chat.ID = uuid.New()
	now := time.Now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chats (id, user_id, title, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		chat.ID, chat.UserID, chat.Title, chat.CreatedAt, chat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("chatRepo.CreateChat: %w", err)
	}
	return nil
}

func (r *chatRepo) GetChat(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.GetContext(ctx, &chat,
		"SELECT * FROM chats WHERE id = $1 AND user_id = $2", chatID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("chatRepo.GetChat: %w", err)
	}
	return &chat, nil
}

func (r *chatRepo) ListChats(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.SelectContext(ctx, &chats,
		"SELECT * FROM chats WHERE user_id = $1 ORDER BY updated_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("chatRepo.ListChats: %w", err)
	}
	return chats, nil
}

func (r *chatRepo) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, chat_id, role, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.ChatID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("chatRepo.AppendMessage: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE chats SET updated_at = $1 WHERE id = $2", msg.CreatedAt, msg.ChatID)
	if err != nil {
		return fmt.Errorf("chatRepo.AppendMessage touch: %w", err)
	}
	return nil
}

func (r *chatRepo) ListMessages(ctx context.Context, chatID uuid.UUID) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	err := r.db.SelectContext(ctx, &msgs,
		"SELECT * FROM chat_messages WHERE chat_id = $1 ORDER BY created_at ASC", chatID)
	if err != nil {
		return nil, fmt.Errorf("chatRepo.ListMessages: %w", err)
	}
	return msgs, nil
}

func (r *chatRepo) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM chats WHERE id = $1 AND user_id = $2", chatID, userID)
	if err != nil {
		return fmt.Errorf("chatRepo.DeleteChat: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrChatNotFound
	}
	return nil
}
