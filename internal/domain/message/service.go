package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	ws "github.com/healthconnect/healthconnect/internal/platform/websocket"
)

var ErrNotFound = errors.New("message not found")

type Service struct {
	repo Repository
	pub  ws.Publisher
	log  zerolog.Logger
}

func NewService(repo Repository, pub ws.Publisher, log zerolog.Logger) *Service {
	return &Service{repo: repo, pub: pub, log: log}
}

// Topic returns the per-user WebSocket topic messages are pushed to.
func Topic(userID uuid.UUID) string {
	return "messages:" + userID.String()
}

// Send persists the message and pushes it to the receiver's topic.
// Delivery is best effort; a push failure never fails the send.
func (s *Service) Send(ctx context.Context, req SendRequest) (*Message, error) {
	if req.SenderID == uuid.Nil || req.ReceiverID == uuid.Nil {
		return nil, fmt.Errorf("sender_id and receiver_id are required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("message body is empty")
	}
	m := &Message{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		SenderName: req.SenderName,
		SenderType: req.SenderType,
		Body:       req.Body,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if event, err := ws.NewEvent("message", Topic(m.ReceiverID), m); err == nil {
		if err := s.pub.Publish(ctx, event); err != nil {
			s.log.Warn().Err(err).Str("message_id", m.ID.String()).Msg("push failed")
		}
	}
	return m, nil
}

func (s *Service) Conversation(ctx context.Context, a, b uuid.UUID) ([]*Message, error) {
	return s.repo.Conversation(ctx, a, b)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Message, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.MarkRead(ctx, id)
}
