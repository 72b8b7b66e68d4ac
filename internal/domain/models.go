package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         Role      `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Chat is a conversation owned by a user.
type Chat struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ChatMessage is a single turn within a chat.
type ChatMessage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ChatID    uuid.UUID `db:"chat_id" json:"chat_id"`
	Role      ChatRole  `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Parameter is one classified lab value extracted from a sanitized analysis.
// Parameters are unique only by position in the source text; duplicates by name
// are permitted and preserved in order.
type Parameter struct {
	Section        string         `json:"section,omitempty"`
	Name           string         `json:"name"`
	Value          string         `json:"value"`
	Classification Classification `json:"classification"`
}

// Report records one analysis invocation and its outcome.
type Report struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	InputKind  string    `db:"input_kind" json:"input_kind"` // text, file or mixed
	ResultText string    `db:"result_text" json:"result_text"`
	Succeeded  bool      `db:"succeeded" json:"succeeded"`
	Warnings   string    `db:"warnings" json:"warnings,omitempty"`
	ModelUsed  string    `db:"model_used" json:"model_used"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// HCApplication is a request for healthcare-assistant privileges.
type HCApplication struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	UserID            uuid.UUID         `db:"user_id" json:"user_id"`
	FullName          string            `db:"full_name" json:"full_name"`
	Email             string            `db:"email" json:"email"`
	Qualification     string            `db:"qualification" json:"qualification"`
	CompanyName       string            `db:"company_name" json:"company_name"`
	ProfilePictureKey string            `db:"profile_picture_key" json:"-"`
	IDDocumentKey     string            `db:"id_document_key" json:"-"`
	Status            ApplicationStatus `db:"status" json:"status"`
	ReviewedBy        *uuid.UUID        `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewNote        string            `db:"review_note" json:"review_note,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}
