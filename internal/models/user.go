package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user account row in the database
type UserDB struct {
	UserID       uuid.UUID `json:"_id" db:"user_id"`              // Primary key
	FirstName    string    `json:"fname" db:"first_name"`         // First name
	LastName     string    `json:"lname" db:"last_name"`          // Last name
	Email        string    `json:"email" db:"email"`              // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`          // bcrypt hash, never serialized
	ProfileImage string    `json:"profileImg" db:"profile_image"` // Reference to the uploaded profile image
	CreatedAt    time.Time `json:"date" db:"created_at"`          // Creation timestamp
}
