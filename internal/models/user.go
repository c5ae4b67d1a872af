package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`       // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique, lower-cased email
	PasswordHash string    `json:"-" db:"password_hash"`       // Bcrypt hash
	IsStaff      bool      `json:"is_staff" db:"is_staff"`     // Staff users own no account
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// UserSummary is a users row with its account, if any, for staff listings.
type UserSummary struct {
	UserID    uuid.UUID           `db:"user_id"`
	Username  string              `db:"username"`
	Email     string              `db:"email"`
	IsStaff   bool                `db:"is_staff"`
	Currency  *Currency           `db:"currency"`
	Balance   decimal.NullDecimal `db:"balance"`
	CreatedAt time.Time           `db:"created_at"`
}
