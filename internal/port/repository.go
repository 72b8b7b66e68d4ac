package port

import (
	"context"

	"github.com/google/uuid"

	"hia/internal/domain"
)

// UserRepository abstracts user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChatRepository abstracts chat and chat-message persistence.
type ChatRepository interface {
	CreateChat(ctx context.Context, chat *domain.Chat) error
	GetChat(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error)
	AppendMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListMessages(ctx context.Context, chatID uuid.UUID) ([]domain.ChatMessage, error)
	DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error
}

// ReportRepository abstracts analysis report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Report, int, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Report, int, error)
}

// ApplicationRepository abstracts healthcare-assistant application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.HCApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HCApplication, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.HCApplication, error)
	List(ctx context.Context, status *domain.ApplicationStatus, offset, limit int) ([]domain.HCApplication, int, error)
	Update(ctx context.Context, app *domain.HCApplication) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
