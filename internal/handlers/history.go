package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

// HistoryLister lists resolved transactions of a user.
type HistoryLister interface {
	ListHistory(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
}

// NewHistoryHandler returns an HTTP handler for the caller's transaction history.
// @Summary Transaction history
// @Description Completed transfers and fulfilled or withdrawn requests of the caller, newest first
// @Tags payments
// @Produce json
// @Success 200 {array} handlers.TransactionResponse "History"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /history [get]
// @Security BearerAuth
func NewHistoryHandler(svc HistoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		history, err := svc.ListHistory(r.Context(), claims.UserID)
		if err != nil {
			writePaymentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionsResponse(history))
	}
}
