package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageDB represents a chat message row in the database.
// Messages are immutable once stored.
type MessageDB struct {
	MessageID  uuid.UUID `json:"_id" db:"message_id"`         // Primary key
	SenderID   string    `json:"senderId" db:"sender_id"`     // Identifier of the sending user
	ReceiverID string    `json:"receiverId" db:"receiver_id"` // Identifier of the receiving user
	Body       string    `json:"message" db:"body"`           // Text content, may be empty
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`   // Insertion timestamp
}

// MessageRequest represents the JSON body for creating a message
// swagger:model MessageRequest
type MessageRequest struct {
	// Message text
	// example: hi
	Message string `json:"message"`

	// Sender user id
	// required: true
	// example: 5f0c6a8e-0c5b-4a53-9d7e-2f3c1b0a9e11
	SenderID string `json:"senderId"`

	// Receiver user id
	// required: true
	// example: 8a1d2c3b-4e5f-4a6b-8c7d-9e0f1a2b3c4d
	ReceiverID string `json:"receiverId"`
}
