package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

// ErrCacheMiss is returned when a key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// cachedUser is the public profile of models.UserDB. Credentials are not cached.
type cachedUser struct {
	UserID       uuid.UUID `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserCacheRepository caches user profiles in Redis. Accounts are never
// updated, so entries only expire.
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached profiles
}

// NewUserCacheRepository creates a new repository instance
func NewUserCacheRepository(client *redis.Client, expiration time.Duration) *UserCacheRepository {
	return &UserCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func userKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID)
}

// GetUser fetches a cached profile
func (r *UserCacheRepository) GetUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	key := userKey(userID)

	val, err := r.client.Get(ctx, key).Bytes()
	logger.Log.Infow("cache get",
		"key", key,
		"hit", err == nil,
		"error", err,
	)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var c cachedUser
	if err := json.Unmarshal(val, &c); err != nil {
		return nil, err
	}

	return &models.UserDB{
		UserID:       c.UserID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		ProfileImage: c.ProfileImage,
		CreatedAt:    c.CreatedAt,
	}, nil
}

// SetUser caches a profile with expiration
func (r *UserCacheRepository) SetUser(ctx context.Context, user *models.UserDB) error {
	key := userKey(user.UserID)

	data, err := json.Marshal(cachedUser{
		UserID:       user.UserID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("cache set",
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}
