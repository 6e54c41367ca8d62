package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-chat/internal/models"
	"github.com/sbilibin2017/gw-chat/internal/services"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

// UserGetter reads user profiles.
type UserGetter interface {
	GetProfile(ctx context.Context, userID string) (*models.UserDB, error)
	ListOthers(ctx context.Context, userID string) ([]models.UserDB, error)
}

// NewUserProfileHandler returns an HTTP handler for a single user profile.
// @Summary User profile
// @Tags users
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {object} models.UserDB "The user, or null when the id is unknown"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /userprofile/{userId} [get]
func NewUserProfileHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.GetProfile(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			if errors.Is(err, services.ErrUserDoesNotExist) {
				writeJSON(w, http.StatusOK, nil)
				return
			}
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// NewListUsersHandler returns an HTTP handler listing every user but one.
// @Summary Other users
// @Tags users
// @Produce json
// @Param uid path string true "User id to exclude"
// @Success 200 {array} models.UserDB
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/{uid} [get]
func NewListUsersHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListOthers(r.Context(), chi.URLParam(r, "uid"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}
