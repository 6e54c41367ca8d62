package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("an account with this email already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordTooShort   = errors.New("password too short")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.UserDB) (*models.UserDB, error)
}

// ImageStore stores uploaded profile images and returns a reference to the stored object.
type ImageStore interface {
	Save(ctx context.Context, filename string, content io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
	images ImageStore
	tx     Transactor
	jwt    JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, images ImageStore, tx Transactor, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		images: images,
		tx:     tx,
		jwt:    jwt,
	}
}

// Register creates an account and returns a session token for it.
func (svc *AuthService) Register(ctx context.Context, in models.SignupInput) (string, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" ||
		in.Image == nil || in.Image.Filename == "" {
		return "", ErrMissingFields
	}
	if len(in.Password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return "", err
	}

	imageRef, err := svc.images.Save(ctx, in.Image.Filename, in.Image.Content, in.Image.ContentType)
	if err != nil {
		logger.Log.Errorw("failed to store profile image", "filename", in.Image.Filename, "error", err)
		return "", err
	}

	// Only the email check and the insert hold a connection.
	var user *models.UserDB
	err = svc.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := svc.reader.GetByEmail(ctx, in.Email)
		if err != nil {
			logger.Log.Errorw("failed to check user exists", "error", err)
			return err
		}
		if existing != nil {
			return ErrUserAlreadyExists
		}

		user, err = svc.writer.Save(ctx, models.UserDB{
			UserID:       uuid.New(),
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			PasswordHash: string(hashedPassword),
			ProfileImage: imageRef,
		})
		if errors.Is(err, models.ErrConflict) {
			return ErrUserAlreadyExists
		}
		if err != nil {
			logger.Log.Errorw("failed to save user", "error", err)
		}
		return err
	})
	if err != nil {
		svc.discardImage(ctx, imageRef)
		if errors.Is(err, ErrUserAlreadyExists) {
			logger.Log.Infow("user already exists", "email", in.Email)
		}
		return "", err
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "error", err)
		return "", err
	}

	return token, nil
}

// discardImage removes an image whose account was never created.
func (svc *AuthService) discardImage(ctx context.Context, ref string) {
	if err := svc.images.Delete(context.WithoutCancel(ctx), ref); err != nil {
		logger.Log.Errorw("failed to remove orphaned profile image", "ref", ref, "error", err)
	}
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrMissingFields
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "error", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("user does not exist", "email", email)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "error", err)
		return "", err
	}

	return token, nil
}
