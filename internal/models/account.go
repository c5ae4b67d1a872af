package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents an accounts row joined with its owner
type Account struct {
	AccountID uuid.UUID       `json:"account_id" db:"account_id"` // Unique account identifier
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`       // Owner of the account (1:1)
	Username  string          `json:"username" db:"username"`     // Owner username, joined from users
	Email     string          `json:"email" db:"email"`           // Owner email, joined from users
	Currency  Currency        `json:"currency" db:"currency"`     // Single account currency
	Balance   decimal.Decimal `json:"balance" db:"balance"`       // Current balance, never negative
	CreatedAt time.Time       `json:"created_at" db:"created_at"` // Timestamp when the account was created
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"` // Timestamp of the last balance change
}

// DisplayBalance formats the balance with the currency sign, e.g. "$60.00".
func (a Account) DisplayBalance() string {
	return a.Currency.Symbol() + a.Balance.StringFixed(2)
}
