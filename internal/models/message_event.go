package models

import (
	"time"

	"github.com/google/uuid"
)

// Push channel and event names used for message notifications.
const (
	MessagesChannel = "messages"
	InsertedEvent   = "inserted"
)

// MessageEventDB is a change feed entry joined with the inserted message.
type MessageEventDB struct {
	EventID    int64     `db:"event_id"`
	MessageID  uuid.UUID `db:"message_id"`
	SenderID   string    `db:"sender_id"`
	ReceiverID string    `db:"receiver_id"`
	Body       string    `db:"body"`
	CreatedAt  time.Time `db:"created_at"`
}

// Notification is the payload pushed for an inserted message.
type Notification struct {
	MessageID  string `json:"-"`
	Message    string `json:"message"`
	ReceiverID string `json:"receiverId"`
	SenderID   string `json:"senderId"`
}

// PushEvent is the envelope delivered on channels that carry several event kinds.
type PushEvent struct {
	Channel string       `json:"channel"`
	Event   string       `json:"event"`
	Data    Notification `json:"data"`
}

// NewNotification builds the push payload for a change feed entry.
func NewNotification(e MessageEventDB) Notification {
	return Notification{
		MessageID:  e.MessageID.String(),
		Message:    e.Body,
		ReceiverID: e.ReceiverID,
		SenderID:   e.SenderID,
	}
}
