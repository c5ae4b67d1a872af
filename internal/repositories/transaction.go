package repositories

import (
	"context"
	"database/sql"
	"errors"
	"iter"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

const transactionSelect = `
	SELECT t.transaction_id, t.kind, t.status, t.payer_id, t.payee_id,
	       pu.username AS payer_username, pu.email AS payer_email,
	       eu.username AS payee_username, eu.email AS payee_email,
	       t.amount, t.currency, t.created_at, t.updated_at
	FROM transactions t
	JOIN accounts pa ON pa.account_id = t.payer_id
	JOIN users pu ON pu.user_id = pa.user_id
	JOIN accounts ea ON ea.account_id = t.payee_id
	JOIN users eu ON eu.user_id = ea.user_id
`

// TransactionRepository is the append/update log of transfers and requests.
type TransactionRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionRepository(db *sqlx.DB, txGetter TxGetter) *TransactionRepository {
	return &TransactionRepository{db: db, txGetter: txGetter}
}

// Create inserts txn and fills in the timestamps assigned by the database.
func (r *TransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	const query = `
		INSERT INTO transactions (transaction_id, kind, status, payer_id, payee_id, amount, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if txn.TransactionID == uuid.Nil {
		txn.TransactionID = uuid.New()
	}
	args := []any{txn.TransactionID, txn.Kind, txn.Status, txn.PayerID, txn.PayeeID, txn.Amount, txn.Currency}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&txn.CreatedAt, &txn.UpdatedAt)
	logQuery(query, args, txn.TransactionID, err)

	return err
}

// GetByID returns the transaction, or nil. With forUpdate the row stays
// locked until the surrounding transaction ends.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*models.Transaction, error) {
	query := transactionSelect + ` WHERE t.transaction_id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF t`
	}

	var txn models.Transaction
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &txn, query, id)
	logQuery(query, []any{id}, txn.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateStatus moves the transaction to status and bumps updated_at.
// It returns sql.ErrNoRows when the transaction does not exist.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	const query = `
		UPDATE transactions
		SET status = $2, updated_at = NOW()
		WHERE transaction_id = $1
	`
	args := []any{id, status}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns the transactions matching filter, most recently updated first.
// The query runs each time the sequence is ranged over and rows are read lazily.
func (r *TransactionRepository) List(ctx context.Context, filter models.TransactionFilter) iter.Seq2[models.Transaction, error] {
	const where = `
		WHERE ($1::UUID IS NULL OR t.payer_id = $1)
		  AND ($2::UUID IS NULL OR t.payee_id = $2)
		  AND ($3::UUID IS NULL OR t.payer_id = $3 OR t.payee_id = $3)
		  AND ($4::BOOLEAN IS NULL OR (t.status = 'pending') = $4)
		ORDER BY t.updated_at DESC, t.created_at DESC, t.transaction_id
	`
	query := transactionSelect + where
	args := filterArgs(filter)

	return func(yield func(models.Transaction, error) bool) {
		rows, err := executor(ctx, r.db, r.txGetter).QueryxContext(ctx, query, args...)
		if err != nil {
			logQuery(query, args, 0, err)
			yield(models.Transaction{}, err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var txn models.Transaction
			if err := rows.StructScan(&txn); err != nil {
				logQuery(query, args, count, err)
				yield(models.Transaction{}, err)
				return
			}
			count++
			if !yield(txn, nil) {
				return
			}
		}

		err = rows.Err()
		logQuery(query, args, count, err)
		if err != nil {
			yield(models.Transaction{}, err)
		}
	}
}

func filterArgs(filter models.TransactionFilter) []any {
	var payer, payee, participant, pending any
	if filter.AccountID != nil {
		switch filter.Role {
		case models.RolePayer:
			payer = *filter.AccountID
		case models.RolePayee:
			payee = *filter.AccountID
		default:
			participant = *filter.AccountID
		}
	}
	if filter.Pending != nil {
		pending = *filter.Pending
	}
	return []any{payer, payee, participant, pending}
}
