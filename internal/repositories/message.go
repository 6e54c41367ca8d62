package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

// MessageWriteRepository stores messages. Each insert also appends to the
// message_events change feed through a database trigger.
type MessageWriteRepository struct {
	db *sqlx.DB
}

func NewMessageWriteRepository(db *sqlx.DB) *MessageWriteRepository {
	return &MessageWriteRepository{db: db}
}

// Save inserts the message and returns the stored record.
func (r *MessageWriteRepository) Save(ctx context.Context, msg models.MessageDB) (*models.MessageDB, error) {
	const query = `
		INSERT INTO messages (message_id, sender_id, receiver_id, body, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING message_id, sender_id, receiver_id, body, created_at
	`
	args := []any{msg.MessageID, msg.SenderID, msg.ReceiverID, msg.Body}

	var stored models.MessageDB
	err := r.db.GetContext(ctx, &stored, query, args...)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", args,
		"result", stored.MessageID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// MessageReadRepository handles message lookups
type MessageReadRepository struct {
	db *sqlx.DB
}

func NewMessageReadRepository(db *sqlx.DB) *MessageReadRepository {
	return &MessageReadRepository{db: db}
}

// GetByParticipant returns every message sent or received by the user in storage order.
func (r *MessageReadRepository) GetByParticipant(ctx context.Context, userID string) ([]models.MessageDB, error) {
	const query = `
		SELECT message_id, sender_id, receiver_id, body, created_at
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY seq
	`
	return r.list(ctx, query, userID)
}

// GetConversation returns the messages exchanged between two users in either direction.
func (r *MessageReadRepository) GetConversation(ctx context.Context, userA, userB string) ([]models.MessageDB, error) {
	const query = `
		SELECT message_id, sender_id, receiver_id, body, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY seq
	`
	return r.list(ctx, query, userA, userB)
}

func (r *MessageReadRepository) list(ctx context.Context, query string, args ...any) ([]models.MessageDB, error) {
	messages := []models.MessageDB{}
	err := r.db.SelectContext(ctx, &messages, query, args...)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", args,
		"result", len(messages),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return messages, nil
}
