package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-p2p-payments/internal/exchange"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

// AccountGetter returns the account of a user.
type AccountGetter interface {
	GetAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error)
}

// AccountResponse represents an account with its balance
// swagger:model AccountResponse
type AccountResponse struct {
	AccountID      uuid.UUID       `json:"account_id"`
	Username       string          `json:"username" example:"alice"`
	Email          string          `json:"email" example:"alice@example.com"`
	Currency       models.Currency `json:"currency" example:"USD"`
	Balance        string          `json:"balance" example:"60.00"`
	DisplayBalance string          `json:"display_balance" example:"$60.00"`
}

func newAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		AccountID:      account.AccountID,
		Username:       account.Username,
		Email:          account.Email,
		Currency:       account.Currency,
		Balance:        account.Balance.StringFixed(exchange.Places),
		DisplayBalance: account.DisplayBalance(),
	}
}

// NewGetAccountHandler returns an HTTP handler for the caller's account.
// @Summary Get account
// @Description Returns the caller's account currency and balance
// @Tags payments
// @Produce json
// @Success 200 {object} handlers.AccountResponse "Account"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "No account for this user"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /account [get]
// @Security BearerAuth
func NewGetAccountHandler(svc AccountGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		account, err := svc.GetAccount(r.Context(), claims.UserID)
		if err != nil {
			writePaymentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newAccountResponse(account))
	}
}
