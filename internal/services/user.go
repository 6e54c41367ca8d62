package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

//go:generate mockgen -source=user.go -destination=user_mock.go -package=services

// UserProfileReader reads user profiles.
type UserProfileReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetAllExcept(ctx context.Context, userID string) ([]models.UserDB, error)
}

// UserCache caches user profiles
type UserCache interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	SetUser(ctx context.Context, user *models.UserDB) error
}

type UserService struct {
	reader UserProfileReader
	cache  UserCache
}

// NewUserService creates a new UserService instance. cache may be nil.
func NewUserService(reader UserProfileReader, cache UserCache) *UserService {
	return &UserService{reader: reader, cache: cache}
}

// GetProfile returns the user with the given id, or ErrUserDoesNotExist.
func (svc *UserService) GetProfile(ctx context.Context, userID string) (*models.UserDB, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUserDoesNotExist
	}

	if svc.cache != nil {
		if user, err := svc.cache.GetUser(ctx, id); err == nil {
			return user, nil
		}
	}

	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}

	if svc.cache != nil {
		if err := svc.cache.SetUser(ctx, user); err != nil {
			logger.Log.Warnw("failed to cache user", "user_id", userID, "error", err)
		}
	}

	return user, nil
}

// ListOthers returns every user except userID.
func (svc *UserService) ListOthers(ctx context.Context, userID string) ([]models.UserDB, error) {
	users, err := svc.reader.GetAllExcept(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list users", "user_id", userID, "error", err)
		return nil, err
	}
	return users, nil
}
