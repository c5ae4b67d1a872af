package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-p2p-payments/internal/exchange"
	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

// UsersLister lists all users.
type UsersLister interface {
	ListAllUsers(ctx context.Context) ([]models.UserSummary, error)
}

// TransactionsLister lists all resolved transactions.
type TransactionsLister interface {
	ListAllTransactions(ctx context.Context) ([]models.Transaction, error)
}

// UserResponse is a user as shown to staff
// swagger:model UserResponse
type UserResponse struct {
	UserID    uuid.UUID        `json:"user_id"`
	Username  string           `json:"username" example:"alice"`
	Email     string           `json:"email" example:"alice@example.com"`
	IsStaff   bool             `json:"is_staff"`
	Currency  *models.Currency `json:"currency,omitempty" example:"USD"`
	Balance   *string          `json:"balance,omitempty" example:"60.00"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewListUsersHandler returns an HTTP handler listing every user.
// @Summary List users
// @Description Every user with its account currency and balance. Staff only.
// @Tags admin
// @Produce json
// @Success 200 {array} handlers.UserResponse "Users"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /admin/users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UsersLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListAllUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			item := UserResponse{
				UserID:    u.UserID,
				Username:  u.Username,
				Email:     u.Email,
				IsStaff:   u.IsStaff,
				Currency:  u.Currency,
				CreatedAt: u.CreatedAt,
			}
			if u.Balance.Valid {
				balance := u.Balance.Decimal.StringFixed(exchange.Places)
				item.Balance = &balance
			}
			resp = append(resp, item)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// NewListTransactionsHandler returns an HTTP handler listing every resolved transaction.
// @Summary List transactions
// @Description Every transaction except pending requests, newest first. Staff only.
// @Tags admin
// @Produce json
// @Success 200 {array} handlers.TransactionResponse "Transactions"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /admin/transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txns, err := svc.ListAllTransactions(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, newTransactionsResponse(txns))
	}
}
