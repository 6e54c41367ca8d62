package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-chat/internal/jwt"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

// Error messages returned in {"errorMessage"} bodies.
const (
	msgMissingFields    = "Please enter all required fields."
	msgPasswordTooShort = "Please enter a password of at least 6 characters."
	msgEmailTaken       = "An account with this email already exists."
	msgWrongCredentials = "Wrong email or password."
	msgInvalidBody      = "Invalid request body."
	msgInvalidMessage   = "Sender and receiver are required."
	msgBodyTooLarge     = "Request body is too large."
	msgInternal         = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{ErrorMessage: msg})
}

// setSessionCookie sends the token in an HTTP-only cookie usable cross-site.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearSessionCookie replaces the session cookie with an already expired one.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
