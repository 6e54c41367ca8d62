package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-chat/internal/jwt"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

//go:generate mockgen -source=session.go -destination=session_mock.go -package=handlers

// TokenValidator checks a session token.
type TokenValidator interface {
	Validate(ctx context.Context, tokenString string) error
}

// NewLogoutHandler returns an HTTP handler that clears the session cookie.
// @Summary Logout
// @Description Replaces the session cookie with an expired one
// @Tags auth
// @Success 200 "Session cookie cleared"
// @Router /logout [get]
func NewLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearSessionCookie(w)
		w.WriteHeader(http.StatusOK)
	}
}

// NewLoggedInHandler returns an HTTP handler reporting whether the session cookie holds a valid token.
// @Summary Session status
// @Description Returns true when the session cookie carries a valid token, false otherwise
// @Tags auth
// @Produce json
// @Success 200 {boolean} boolean
// @Router /loggedIn [get]
func NewLoggedInHandler(validator TokenValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := sessionToken(r, validator)
		writeJSON(w, http.StatusOK, ok)
	}
}

// NewGetTokenHandler returns an HTTP handler exposing the raw session token.
// @Summary Session token
// @Description Returns {"token"} when the session cookie carries a valid token, false otherwise
// @Tags auth
// @Produce json
// @Success 200 {object} models.TokenResponse
// @Router /getToken [get]
func NewGetTokenHandler(validator TokenValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := sessionToken(r, validator)
		if !ok {
			writeJSON(w, http.StatusOK, false)
			return
		}
		writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
	}
}

func sessionToken(r *http.Request, validator TokenValidator) (string, bool) {
	cookie, err := r.Cookie(jwt.CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	if err := validator.Validate(r.Context(), cookie.Value); err != nil {
		return "", false
	}
	return cookie.Value, true
}
