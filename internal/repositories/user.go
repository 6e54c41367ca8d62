package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/models"
)

const uniqueViolation = "23505"

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the given email, or nil when there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, first_name, last_name, email, password_hash, profile_image, created_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with the given id, or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, first_name, last_name, email, password_hash, profile_image, created_at
		FROM users
		WHERE user_id = $1
	`
	return r.getOne(ctx, query, userID)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", []any{arg},
		"result", user.UserID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAllExcept lists every user other than the given one, oldest first.
func (r *UserReadRepository) GetAllExcept(ctx context.Context, userID string) ([]models.UserDB, error) {
	const query = `
		SELECT user_id, first_name, last_name, email, password_hash, profile_image, created_at
		FROM users
		WHERE user_id::TEXT <> $1
		ORDER BY created_at, user_id
	`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query, userID)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", []any{userID},
		"result", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new user. A duplicate email yields models.ErrConflict.
func (r *UserWriteRepository) Save(ctx context.Context, user models.UserDB) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (user_id, first_name, last_name, email, password_hash, profile_image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	args := []any{user.UserID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.ProfileImage}

	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user.CreatedAt, query, args...)

	// Password hash stays out of the log.
	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", []any{user.UserID, user.FirstName, user.LastName, user.Email, user.ProfileImage},
		"result", user.CreatedAt,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, models.ErrConflict
		}
		return nil, err
	}
	return &user, nil
}
