package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
	"github.com/sbilibin2017/gw-chat/internal/services"
)

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates a user and sets the session token in an HTTP-only cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 "Session cookie set"
// @Failure 400 {object} models.ErrorResponse "Missing fields"
// @Failure 401 {object} models.ErrorResponse "Wrong email or password"
// @Failure 500 "Internal server error"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgMissingFields)
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				writeError(w, http.StatusBadRequest, msgMissingFields)
			case errors.Is(err, services.ErrInvalidCredentials),
				errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusUnauthorized, msgWrongCredentials)
			default:
				logger.Log.Errorw("internal server error", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		setSessionCookie(w, token)
		w.WriteHeader(http.StatusOK)
	}
}
