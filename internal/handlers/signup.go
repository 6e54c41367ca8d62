package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
	"github.com/sbilibin2017/gw-chat/internal/services"
)

//go:generate mockgen -source=signup.go -destination=signup_mock.go -package=handlers

const (
	// MaxSignupBytes caps the whole multipart signup body, profile image included.
	MaxSignupBytes = 5 << 20
	// maxSignupMemory bounds the part of a multipart signup form kept in memory.
	maxSignupMemory = 1 << 20
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, in models.SignupInput) (string, error)
}

// NewSignupHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates an account from a multipart form with a profile image and sets the session cookie. Email must be unique, password at least 6 characters.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param fname formData string true "First name"
// @Param lname formData string true "Last name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param profileImg formData file true "Profile image"
// @Success 200 "Session cookie set"
// @Failure 400 {object} models.ErrorResponse "Validation failed or email already registered"
// @Failure 413 {object} models.ErrorResponse "Request body is too large"
// @Failure 500 "Internal server error"
// @Router /signup/new [post]
func NewSignupHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > MaxSignupBytes {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, MaxSignupBytes)

		if err := r.ParseMultipartForm(maxSignupMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
				return
			}
			writeError(w, http.StatusBadRequest, msgMissingFields)
			return
		}
		defer r.MultipartForm.RemoveAll()

		in := models.SignupInput{
			FirstName: r.FormValue("fname"),
			LastName:  r.FormValue("lname"),
			Email:     r.FormValue("email"),
			Password:  r.FormValue("password"),
		}

		file, header, err := r.FormFile("profileImg")
		switch {
		case err == nil:
			defer file.Close()
			in.Image = &models.ProfileImage{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     file,
			}
		case errors.Is(err, http.ErrMissingFile):
		default:
			writeError(w, http.StatusBadRequest, msgMissingFields)
			return
		}

		token, err := svc.Register(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				writeError(w, http.StatusBadRequest, msgMissingFields)
			case errors.Is(err, services.ErrPasswordTooShort):
				writeError(w, http.StatusBadRequest, msgPasswordTooShort)
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, msgEmailTaken)
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
