package message

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*Message, error)
	Conversation(ctx context.Context, a, b uuid.UUID) ([]*Message, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
