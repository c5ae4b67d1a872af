package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tells a direct transfer from a payment request.
type Kind string

const (
	KindTransfer Kind = "transfer"
	KindRequest  Kind = "request"
)

// Status is the lifecycle state of a transaction record.
//
// Transfers are created completed. Requests start pending and end either
// fulfilled (accepted by the payer) or withdrawn (deleted by a participant).
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusWithdrawn Status = "withdrawn"
)

// Transaction represents a transactions row joined with both participants.
type Transaction struct {
	TransactionID uuid.UUID       `json:"transaction_id" db:"transaction_id"` // Primary key
	Kind          Kind            `json:"kind" db:"kind"`                     // transfer or request
	Status        Status          `json:"status" db:"status"`                 // Lifecycle state
	PayerID       uuid.UUID       `json:"payer_id" db:"payer_id"`             // Account the money leaves
	PayeeID       uuid.UUID       `json:"payee_id" db:"payee_id"`             // Account the money arrives at
	PayerUsername string          `json:"payer_username" db:"payer_username"` // Joined from users
	PayerEmail    string          `json:"payer_email" db:"payer_email"`       // Joined from users
	PayeeUsername string          `json:"payee_username" db:"payee_username"` // Joined from users
	PayeeEmail    string          `json:"payee_email" db:"payee_email"`       // Joined from users
	Amount        decimal.Decimal `json:"amount" db:"amount"`                 // Always positive
	Currency      Currency        `json:"currency" db:"currency"`             // Currency Amount is denominated in
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"` // Bumped on every state change
}

// IsRequest reports whether the record is an outstanding request.
func (t Transaction) IsRequest() bool {
	return t.Status == StatusPending
}

// Role selects which side of a transaction an account filter matches.
type Role int

const (
	RoleAny Role = iota
	RolePayer
	RolePayee
)

// TransactionFilter narrows a transaction listing. A nil AccountID matches
// every account and a nil Pending matches every status.
type TransactionFilter struct {
	AccountID *uuid.UUID
	Role      Role
	Pending   *bool
}

// TransactionEvent is the message published for every transaction state change.
type TransactionEvent struct {
	TransactionID string `json:"transaction_id"`
	Timestamp     int64  `json:"timestamp"` // Unix seconds
	Kind          Kind   `json:"kind"`
	Status        Status `json:"status"`
	PayerID       string `json:"payer_id"`
	PayeeID       string `json:"payee_id"`
	Amount        string `json:"amount"` // Fixed two-decimal string
	Currency      string `json:"currency"`
}

// AcceptResult is the outcome of accepting a request. When the payer is short
// of funds nothing moves and InsufficientBalance names the request.
type AcceptResult struct {
	RequestID           uuid.UUID
	Accepted            bool
	InsufficientBalance bool
}

// RequestsOverview groups the pending requests of one account.
type RequestsOverview struct {
	Sent     []Transaction // Requests the account made, it is the payee
	Received []Transaction // Requests addressed to the account, it is the payer
	// InsufficientBalanceID is the request a previous accept failed on, if any.
	InsufficientBalanceID *uuid.UUID
}
