package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByUsernameOrEmail returns the first user matching either the username or
// the email. Nil arguments are ignored. Returns nil when nothing matches.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, is_staff, created_at, updated_at
		FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND username = $1)
		   OR ($2::VARCHAR IS NOT NULL AND email = $2)
		ORDER BY created_at
		LIMIT 1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, username, email)
	logQuery(query, []any{username, email}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user with its account, if any, ordered by username.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	const query = `
		SELECT u.user_id, u.username, u.email, u.is_staff, a.currency, a.balance, u.created_at
		FROM users u
		LEFT JOIN accounts a ON a.user_id = u.user_id
		ORDER BY u.username
	`

	var users []models.UserSummary
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query)
	logQuery(query, nil, len(users), err)

	return users, err
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a user and fills in the generated id and timestamps.
// It returns ErrAlreadyExists when the username or email is taken.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	const query = `
		INSERT INTO users (username, email, password_hash, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING user_id, created_at, updated_at
	`
	args := []any{user.Username, user.Email, user.PasswordHash, user.IsStaff}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt)

	// never log the password hash
	logQuery(query, args[:2], user.UserID, err)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}
