package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

//go:generate mockgen -source=message.go -destination=message_mock.go -package=services

var ErrInvalidMessage = errors.New("sender and receiver are required")

// MessageWriter persists messages.
type MessageWriter interface {
	Save(ctx context.Context, msg models.MessageDB) (*models.MessageDB, error)
}

// MessageReader lists stored messages.
type MessageReader interface {
	GetByParticipant(ctx context.Context, userID string) ([]models.MessageDB, error)
	GetConversation(ctx context.Context, userA, userB string) ([]models.MessageDB, error)
}

// MessageService stores and lists chat messages. Push notifications are
// produced by the relay from the change feed, not here.
type MessageService struct {
	reader MessageReader
	writer MessageWriter
}

// NewMessageService creates a new MessageService instance.
func NewMessageService(reader MessageReader, writer MessageWriter) *MessageService {
	return &MessageService{reader: reader, writer: writer}
}

// Create stores a message. The body may be empty.
func (svc *MessageService) Create(ctx context.Context, req models.MessageRequest) (*models.MessageDB, error) {
	if req.SenderID == "" || req.ReceiverID == "" {
		return nil, ErrInvalidMessage
	}

	msg, err := svc.writer.Save(ctx, models.MessageDB{
		MessageID:  uuid.New(),
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Body:       req.Message,
	})
	if err != nil {
		logger.Log.Errorw("failed to save message", "error", err)
		return nil, err
	}

	return msg, nil
}

// ListByParticipant returns every message sent or received by userID.
func (svc *MessageService) ListByParticipant(ctx context.Context, userID string) ([]models.MessageDB, error) {
	msgs, err := svc.reader.GetByParticipant(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list messages", "user_id", userID, "error", err)
		return nil, err
	}
	return msgs, nil
}

// ListConversation returns the messages exchanged between two users in either direction.
func (svc *MessageService) ListConversation(ctx context.Context, userA, userB string) ([]models.MessageDB, error) {
	msgs, err := svc.reader.GetConversation(ctx, userA, userB)
	if err != nil {
		logger.Log.Errorw("failed to list conversation", "user_a", userA, "user_b", userB, "error", err)
		return nil, err
	}
	return msgs, nil
}
