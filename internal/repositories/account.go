package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

const accountSelect = `
	SELECT a.account_id, a.user_id, u.username, u.email, a.currency, a.balance, a.created_at, a.updated_at
	FROM accounts a
	JOIN users u ON u.user_id = a.user_id
`

// AccountRepository is the ledger of account balances.
// Debit and Credit are the only statements that change a balance.
type AccountRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountRepository(db *sqlx.DB, txGetter TxGetter) *AccountRepository {
	return &AccountRepository{db: db, txGetter: txGetter}
}

// Create opens an account for userID with an opening balance.
func (r *AccountRepository) Create(ctx context.Context, userID uuid.UUID, currency models.Currency, balance decimal.Decimal) (*models.Account, error) {
	const query = `
		INSERT INTO accounts (account_id, user_id, currency, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING account_id, user_id, currency, balance, created_at, updated_at
	`
	args := []any{uuid.New(), userID, currency, balance}

	var account models.Account
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &account, query, args...)
	logQuery(query, args, account.AccountID, err)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &account, nil
}

// GetByUserID returns the account owned by userID, or nil.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	return r.getOne(ctx, accountSelect+` WHERE a.user_id = $1`, userID)
}

// GetByEmail returns the account of the user with the given email, or nil.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, accountSelect+` WHERE u.email = $1`, email)
}

// LockByID reads the account and locks its row until the surrounding
// transaction ends. Returns nil when the account does not exist.
func (r *AccountRepository) LockByID(ctx context.Context, accountID uuid.UUID) (*models.Account, error) {
	return r.getOne(ctx, accountSelect+` WHERE a.account_id = $1 FOR UPDATE OF a`, accountID)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, args ...any) (*models.Account, error) {
	var account models.Account
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &account, query, args...)
	logQuery(query, args, account, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Debit decreases the balance when it covers amount and returns the new balance.
// It returns sql.ErrNoRows when the balance is too low or the account is missing.
func (r *AccountRepository) Debit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE account_id = $1 AND balance >= $2
		RETURNING balance
	`
	return r.updateBalance(ctx, query, accountID, amount)
}

// Credit increases the balance and returns the new balance.
// It returns sql.ErrNoRows when the account is missing.
func (r *AccountRepository) Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE account_id = $1
		RETURNING balance
	`
	return r.updateBalance(ctx, query, accountID, amount)
}

func (r *AccountRepository) updateBalance(ctx context.Context, query string, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	args := []any{accountID, amount}

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &balance, query, args...)
	logQuery(query, args, balance, err)

	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
