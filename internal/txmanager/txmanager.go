package txmanager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
)

// ErrConflict is returned when a unit of work kept failing on concurrent
// updates after all retries. Callers may retry the whole operation later.
var ErrConflict = errors.New("concurrent update conflict")

// Postgres error codes that mean the unit of work can simply run again.
var retryableCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

// TxManager runs units of work inside database transactions.
type TxManager struct {
	db          *sqlx.DB
	maxRetries  int
	lockTimeout time.Duration
}

// Opt configures a TxManager.
type Opt func(*TxManager)

// WithMaxRetries sets how many times a conflicting unit of work is re-run.
func WithMaxRetries(n int) Opt {
	return func(m *TxManager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithLockTimeout bounds how long statements wait for row locks. Zero keeps the server default.
func WithLockTimeout(d time.Duration) Opt {
	return func(m *TxManager) {
		m.lockTimeout = d
	}
}

// New creates a TxManager with 3 retries and no explicit lock timeout.
func New(db *sqlx.DB, opts ...Opt) *TxManager {
	m := &TxManager{db: db, maxRetries: 3}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do runs fn inside a transaction stored in the context passed to fn.
// The transaction commits when fn returns nil and rolls back otherwise.
// A call made while a transaction is already in ctx joins that transaction.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if GetTxFromContext(ctx) != nil {
		return fn(ctx)
	}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		err = m.run(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		logger.Log.Warnw("transaction conflict, retrying", "attempt", attempt+1, "error", err)
	}

	logger.Log.Errorw("transaction retries exhausted", "retries", m.maxRetries, "error", err)
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if m.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := fn(setTxToContext(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.Errorw("failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return err
	}
	return nil
}

// IsRetryable reports whether err is a Postgres conflict worth re-running for.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := retryableCodes[pgErr.Code]
		return ok
	}
	return false
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
