package models

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Wrong email or password.
	ErrorMessage string `json:"errorMessage"`
}

// TokenResponse represents the raw session token
// swagger:model TokenResponse
type TokenResponse struct {
	// Session token
	// example: JWT_TOKEN
	Token string `json:"token"`
}
