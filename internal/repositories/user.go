package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
)

const uniqueViolationCode = "23505"

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// translateUserConflict maps a unique violation on the users table to a models error.
func translateUserConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return models.ErrUsernameConflict
	case "users_email_key":
		return models.ErrEmailConflict
	}
	return err
}

func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

const selectUser = `
	SELECT user_id, username, email, password_hash, created_at, updated_at
	FROM users
	WHERE %s = $1
	LIMIT 1
`

// UserReadRepository reads accounts.
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the account with the given id, or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	return r.getBy(ctx, "user_id", id)
}

// GetByUsername returns the account with exactly this username, or nil.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail returns the account with this email, or nil. The email must already be lowercased.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserReadRepository) getBy(ctx context.Context, column string, value any) (*models.UserDB, error) {
	query := fmt.Sprintf(selectUser, column)

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, value)

	logger.FromContext(ctx).Infow(
		"sql executed",
		"query", oneLine(query),
		"args", []any{value},
		"found", err == nil,
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

// UserWriteRepository creates and updates accounts.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a new account. A duplicate username or email yields
// models.ErrUsernameConflict or models.ErrEmailConflict.
func (r *UserWriteRepository) Create(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING user_id, username, email, password_hash, created_at, updated_at
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, username, email, passwordHash)

	// Log with query in single line, password hash omitted
	logger.FromContext(ctx).Infow(
		"sql executed",
		"query", oneLine(query),
		"args", []any{username, email},
		"result", user.UserID,
		"error", err,
	)

	if err != nil {
		return nil, translateUserConflict(err)
	}
	return &user, nil
}

// Update replaces the non-nil fields of upd. It returns nil when the account does not exist.
func (r *UserWriteRepository) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET username = COALESCE($2, username),
		    email = COALESCE($3, email),
		    password_hash = COALESCE($4, password_hash),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, username, email, password_hash, created_at, updated_at
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query,
		id, upd.Username, upd.Email, upd.PasswordHash)

	logger.FromContext(ctx).Infow(
		"sql executed",
		"query", oneLine(query),
		"args", []any{id, upd.Username, upd.Email, upd.PasswordHash != nil},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateUserConflict(err)
	}
	return &user, nil
}
