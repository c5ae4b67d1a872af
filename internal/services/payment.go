package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

//go:generate mockgen -source=payment.go -destination=mock_payment_test.go -package=services

var (
	// ErrInvalidAmount is returned for amounts that are not positive, have more
	// than two decimal places or do not fit the ledger.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrCurrencyMismatch is returned when a payment names a currency other than the sender's.
	ErrCurrencyMismatch = errors.New("currency does not match the account currency")
	// ErrSelfPayment is returned when both sides of a payment are the same account.
	ErrSelfPayment = errors.New("cannot pay or request from yourself")
	// ErrInsufficientBalance is returned when the payer cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrRecipientNotFound is returned when no account has the given email.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrAccountNotFound is returned when the caller owns no account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNotFound is returned when a request does not exist.
	ErrNotFound = errors.New("request not found")
	// ErrRequestNotPending is returned when a request was already fulfilled or withdrawn.
	ErrRequestNotPending = fmt.Errorf("%w: no longer pending", ErrNotFound)
	// ErrForbidden is returned when the caller may not act on a request.
	ErrForbidden = errors.New("operation not allowed for this account")
)

// maxAmount is the first value NUMERIC(20,2) cannot hold.
var maxAmount = decimal.New(1, 18)

// TxManager runs a unit of work atomically.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AccountLedger reads, locks and mutates account balances.
type AccountLedger interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	LockByID(ctx context.Context, accountID uuid.UUID) (*models.Account, error)
	Debit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

// TransactionStore keeps transfers and requests.
type TransactionStore interface {
	Create(ctx context.Context, txn *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	List(ctx context.Context, filter models.TransactionFilter) iter.Seq2[models.Transaction, error]
}

// Converter converts money between currencies.
type Converter interface {
	Convert(from, to models.Currency, amount decimal.Decimal) (decimal.Decimal, error)
}

// HintStore remembers the last request an account could not afford.
type HintStore interface {
	SetInsufficientBalance(ctx context.Context, accountID, requestID uuid.UUID) error
	PopInsufficientBalance(ctx context.Context, accountID uuid.UUID) (*uuid.UUID, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// PaymentService moves money between accounts and drives the request lifecycle.
// Every mutation runs as one unit of work of the TxManager.
type PaymentService struct {
	tm           TxManager
	accounts     AccountLedger
	transactions TransactionStore
	converter    Converter
	hints        HintStore
	kafkaWriter  KafkaWriter
}

// NewPaymentService creates a new PaymentService. hints and kafkaWriter may be nil.
func NewPaymentService(
	tm TxManager,
	accounts AccountLedger,
	transactions TransactionStore,
	converter Converter,
	hints HintStore,
	kafkaWriter KafkaWriter,
) *PaymentService {
	return &PaymentService{
		tm:           tm,
		accounts:     accounts,
		transactions: transactions,
		converter:    converter,
		hints:        hints,
		kafkaWriter:  kafkaWriter,
	}
}

// ValidateAmount checks that amount can be moved by the ledger.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return fmt.Errorf("%w: at most two decimal places", ErrInvalidAmount)
	}
	if !amount.LessThan(maxAmount) {
		return fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetAccount returns the caller's account.
func (s *PaymentService) GetAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get account", "user_id", userID, "error", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// SendPayment transfers amount from the caller to the account registered with
// recipientEmail. The receiver is credited the amount converted into its currency.
// A non-nil currency must equal the sender's currency.
func (s *PaymentService) SendPayment(
	ctx context.Context,
	userID uuid.UUID,
	recipientEmail string,
	amount decimal.Decimal,
	currency *models.Currency,
) (*models.Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	recipientEmail = normalizeEmail(recipientEmail)

	var txn *models.Transaction
	err := s.tm.Do(ctx, func(ctx context.Context) error {
		txn = nil

		sender, err := s.GetAccount(ctx, userID)
		if err != nil {
			return err
		}
		if currency != nil && *currency != sender.Currency {
			return ErrCurrencyMismatch
		}

		recipient, err := s.accounts.GetByEmail(ctx, recipientEmail)
		if err != nil {
			logger.Log.Errorw("failed to get recipient", "email", recipientEmail, "error", err)
			return err
		}
		if recipient == nil {
			return ErrRecipientNotFound
		}
		if recipient.AccountID == sender.AccountID {
			return ErrSelfPayment
		}

		locked, err := s.lockAccounts(ctx, sender.AccountID, recipient.AccountID)
		if err != nil {
			return err
		}
		sender, recipient = locked[sender.AccountID], locked[recipient.AccountID]

		if sender.Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		credited, err := s.converter.Convert(sender.Currency, recipient.Currency, amount)
		if err != nil {
			logger.Log.Errorw("failed to convert amount",
				"from", sender.Currency, "to", recipient.Currency, "amount", amount, "error", err)
			return err
		}

		if _, err := s.accounts.Debit(ctx, sender.AccountID, amount); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInsufficientBalance
			}
			return err
		}
		if _, err := s.accounts.Credit(ctx, recipient.AccountID, credited); err != nil {
			return err
		}

		txn = &models.Transaction{
			Kind:          models.KindTransfer,
			Status:        models.StatusCompleted,
			PayerID:       sender.AccountID,
			PayeeID:       recipient.AccountID,
			PayerUsername: sender.Username,
			PayerEmail:    sender.Email,
			PayeeUsername: recipient.Username,
			PayeeEmail:    recipient.Email,
			Amount:        amount,
			Currency:      sender.Currency,
		}
		return s.transactions.Create(ctx, txn)
	})
	if err != nil {
		logger.Log.Infow("payment not sent", "user_id", userID, "recipient", recipientEmail, "amount", amount, "error", err)
		return nil, err
	}

	s.publishTransaction(ctx, *txn)
	return txn, nil
}

// RequestPayment records a pending request for amount, in the caller's
// currency, addressed to the account registered with payerEmail.
func (s *PaymentService) RequestPayment(
	ctx context.Context,
	userID uuid.UUID,
	payerEmail string,
	amount decimal.Decimal,
) (*models.Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	payerEmail = normalizeEmail(payerEmail)

	var txn *models.Transaction
	err := s.tm.Do(ctx, func(ctx context.Context) error {
		txn = nil

		requester, err := s.GetAccount(ctx, userID)
		if err != nil {
			return err
		}

		payer, err := s.accounts.GetByEmail(ctx, payerEmail)
		if err != nil {
			logger.Log.Errorw("failed to get payer", "email", payerEmail, "error", err)
			return err
		}
		if payer == nil {
			return ErrRecipientNotFound
		}
		if payer.AccountID == requester.AccountID {
			return ErrSelfPayment
		}

		txn = &models.Transaction{
			Kind:          models.KindRequest,
			Status:        models.StatusPending,
			PayerID:       payer.AccountID,
			PayeeID:       requester.AccountID,
			PayerUsername: payer.Username,
			PayerEmail:    payer.Email,
			PayeeUsername: requester.Username,
			PayeeEmail:    requester.Email,
			Amount:        amount,
			Currency:      requester.Currency,
		}
		return s.transactions.Create(ctx, txn)
	})
	if err != nil {
		logger.Log.Infow("payment not requested", "user_id", userID, "payer", payerEmail, "amount", amount, "error", err)
		return nil, err
	}

	s.publishTransaction(ctx, *txn)
	return txn, nil
}

// AcceptRequest pays a pending request addressed to the caller. The caller is
// debited the request amount converted into its own currency and the requester
// is credited the original amount. When the caller cannot cover it nothing
// changes and the result reports the shortfall instead of an error.
func (s *PaymentService) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.AcceptResult, error) {
	var (
		result    models.AcceptResult
		payerID   uuid.UUID
		fulfilled *models.Transaction
	)

	err := s.tm.Do(ctx, func(ctx context.Context) error {
		result = models.AcceptResult{RequestID: requestID}
		fulfilled = nil

		me, err := s.GetAccount(ctx, userID)
		if err != nil {
			return err
		}
		payerID = me.AccountID

		txn, err := s.loadRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if txn.PayerID != me.AccountID {
			return ErrForbidden
		}
		if txn.Status != models.StatusPending {
			return ErrRequestNotPending
		}

		locked, err := s.lockAccounts(ctx, txn.PayerID, txn.PayeeID)
		if err != nil {
			return err
		}
		payer, payee := locked[txn.PayerID], locked[txn.PayeeID]

		debit, err := s.converter.Convert(txn.Currency, payer.Currency, txn.Amount)
		if err != nil {
			logger.Log.Errorw("failed to convert amount",
				"from", txn.Currency, "to", payer.Currency, "amount", txn.Amount, "error", err)
			return err
		}

		if payer.Balance.LessThan(debit) {
			result.InsufficientBalance = true
			return nil
		}
		if _, err := s.accounts.Debit(ctx, payer.AccountID, debit); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				result.InsufficientBalance = true
				return nil
			}
			return err
		}
		if _, err := s.accounts.Credit(ctx, payee.AccountID, txn.Amount); err != nil {
			return err
		}
		if err := s.transactions.UpdateStatus(ctx, txn.TransactionID, models.StatusFulfilled); err != nil {
			return err
		}

		txn.Status = models.StatusFulfilled
		fulfilled = txn
		result.Accepted = true
		return nil
	})
	if err != nil {
		logger.Log.Infow("request not accepted", "user_id", userID, "request_id", requestID, "error", err)
		return nil, err
	}

	if result.InsufficientBalance {
		logger.Log.Infow("insufficient balance to accept request", "user_id", userID, "request_id", requestID)
		if s.hints != nil {
			if err := s.hints.SetInsufficientBalance(ctx, payerID, requestID); err != nil {
				logger.Log.Errorw("failed to store insufficient balance hint", "account_id", payerID, "error", err)
			}
		}
		return &result, nil
	}

	s.publishTransaction(ctx, *fulfilled)
	return &result, nil
}

// DeleteRequest withdraws a pending request. Either participant may delete it.
// Deleting a request that is no longer pending changes nothing.
func (s *PaymentService) DeleteRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	var withdrawn *models.Transaction

	err := s.tm.Do(ctx, func(ctx context.Context) error {
		withdrawn = nil

		me, err := s.GetAccount(ctx, userID)
		if err != nil {
			return err
		}

		txn, err := s.loadRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if txn.PayerID != me.AccountID && txn.PayeeID != me.AccountID {
			return ErrForbidden
		}
		if txn.Status != models.StatusPending {
			return nil
		}

		if err := s.transactions.UpdateStatus(ctx, txn.TransactionID, models.StatusWithdrawn); err != nil {
			return err
		}
		txn.Status = models.StatusWithdrawn
		withdrawn = txn
		return nil
	})
	if err != nil {
		logger.Log.Infow("request not deleted", "user_id", userID, "request_id", requestID, "error", err)
		return err
	}

	if withdrawn != nil {
		s.publishTransaction(ctx, *withdrawn)
	}
	return nil
}

// ListRequests returns the caller's pending requests, newest first, and
// consumes the insufficient balance hint left by a failed accept.
func (s *PaymentService) ListRequests(ctx context.Context, userID uuid.UUID) (*models.RequestsOverview, error) {
	me, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending := true
	sent, err := collect(s.transactions.List(ctx, models.TransactionFilter{
		AccountID: &me.AccountID,
		Role:      models.RolePayee,
		Pending:   &pending,
	}))
	if err != nil {
		logger.Log.Errorw("failed to list sent requests", "account_id", me.AccountID, "error", err)
		return nil, err
	}

	received, err := collect(s.transactions.List(ctx, models.TransactionFilter{
		AccountID: &me.AccountID,
		Role:      models.RolePayer,
		Pending:   &pending,
	}))
	if err != nil {
		logger.Log.Errorw("failed to list received requests", "account_id", me.AccountID, "error", err)
		return nil, err
	}

	overview := &models.RequestsOverview{Sent: sent, Received: received}
	if s.hints != nil {
		hint, err := s.hints.PopInsufficientBalance(ctx, me.AccountID)
		if err != nil {
			logger.Log.Errorw("failed to read insufficient balance hint", "account_id", me.AccountID, "error", err)
		}
		overview.InsufficientBalanceID = hint
	}
	return overview, nil
}

// ListHistory returns every completed, fulfilled or withdrawn transaction the
// caller took part in, most recently updated first.
func (s *PaymentService) ListHistory(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	me, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending := false
	history, err := collect(s.transactions.List(ctx, models.TransactionFilter{
		AccountID: &me.AccountID,
		Pending:   &pending,
	}))
	if err != nil {
		logger.Log.Errorw("failed to list history", "account_id", me.AccountID, "error", err)
		return nil, err
	}
	return history, nil
}

// loadRequest reads a request and locks it for the unit of work.
func (s *PaymentService) loadRequest(ctx context.Context, requestID uuid.UUID) (*models.Transaction, error) {
	txn, err := s.transactions.GetByID(ctx, requestID, true)
	if err != nil {
		logger.Log.Errorw("failed to get request", "request_id", requestID, "error", err)
		return nil, err
	}
	if txn == nil || txn.Kind != models.KindRequest {
		return nil, ErrNotFound
	}
	return txn, nil
}

// lockAccounts locks the given accounts in ascending id order and returns
// their current state keyed by id.
func (s *PaymentService) lockAccounts(ctx context.Context, a, b uuid.UUID) (map[uuid.UUID]*models.Account, error) {
	ids := []uuid.UUID{a, b}
	if bytes.Compare(a[:], b[:]) > 0 {
		ids[0], ids[1] = b, a
	}

	locked := make(map[uuid.UUID]*models.Account, len(ids))
	for _, id := range ids {
		account, err := s.accounts.LockByID(ctx, id)
		if err != nil {
			logger.Log.Errorw("failed to lock account", "account_id", id, "error", err)
			return nil, err
		}
		if account == nil {
			return nil, fmt.Errorf("lock account %s: %w", id, ErrAccountNotFound)
		}
		locked[id] = account
	}
	return locked, nil
}

// publishTransaction publishes a transaction event to Kafka.
func (s *PaymentService) publishTransaction(ctx context.Context, txn models.Transaction) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "transaction_id", txn.TransactionID)
		return
	}

	event := models.TransactionEvent{
		TransactionID: txn.TransactionID.String(),
		Timestamp:     txn.UpdatedAt.Unix(),
		Kind:          txn.Kind,
		Status:        txn.Status,
		PayerID:       txn.PayerID.String(),
		PayeeID:       txn.PayeeID.String(),
		Amount:        txn.Amount.StringFixed(2),
		Currency:      string(txn.Currency),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", txn.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", txn.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction published to Kafka", "transaction_id", txn.TransactionID, "status", txn.Status)
	}
}

func collect(seq iter.Seq2[models.Transaction, error]) ([]models.Transaction, error) {
	out := []models.Transaction{}
	for txn, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, txn)
	}
	return out, nil
}
