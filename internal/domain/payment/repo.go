package payment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Payment, error)
	Stats(ctx context.Context) (*Stats, error)
}
