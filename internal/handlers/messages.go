package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
	"github.com/sbilibin2017/gw-chat/internal/services"
)

//go:generate mockgen -source=messages.go -destination=messages_mock.go -package=handlers

// MessageCreator stores new messages.
type MessageCreator interface {
	Create(ctx context.Context, req models.MessageRequest) (*models.MessageDB, error)
}

// MessageLister lists stored messages.
type MessageLister interface {
	ListByParticipant(ctx context.Context, userID string) ([]models.MessageDB, error)
	ListConversation(ctx context.Context, userA, userB string) ([]models.MessageDB, error)
}

// NewCreateMessageHandler returns an HTTP handler that stores a message.
// Connected clients are notified by the relay once the insert is committed.
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Param message body models.MessageRequest true "Message"
// @Success 201 {object} models.MessageDB "Stored message"
// @Failure 400 {object} models.ErrorResponse "Invalid message"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /messages/new [post]
func NewCreateMessageHandler(svc MessageCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		msg, err := svc.Create(r.Context(), req)
		if err != nil {
			if errors.Is(err, services.ErrInvalidMessage) {
				writeError(w, http.StatusBadRequest, msgInvalidMessage)
				return
			}
			logger.Log.Errorw("failed to create message", "error", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		writeJSON(w, http.StatusCreated, msg)
	}
}

// NewListMessagesHandler returns an HTTP handler listing every message a user sent or received.
// @Summary Messages of a user
// @Tags messages
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {array} models.MessageDB
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /messages/{userId} [get]
func NewListMessagesHandler(svc MessageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := svc.ListByParticipant(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

// NewConversationHandler returns an HTTP handler listing the messages between two users.
// @Summary Conversation between two users
// @Tags messages
// @Produce json
// @Param sender path string true "First user id"
// @Param receiver path string true "Second user id"
// @Success 200 {array} models.MessageDB
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /messages/{sender}/{receiver} [get]
func NewConversationHandler(svc MessageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := svc.ListConversation(r.Context(), chi.URLParam(r, "sender"), chi.URLParam(r, "receiver"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}
