package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-p2p-payments/internal/exchange"
	"github.com/sbilibin2017/gw-p2p-payments/internal/jwt"
	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
	"github.com/sbilibin2017/gw-p2p-payments/internal/services"
	"github.com/sbilibin2017/gw-p2p-payments/internal/txmanager"
)

//go:generate mockgen -destination=mock_handlers_test.go -package=handlers . Registerer,Loginer,AccountGetter,PaymentSender,PaymentRequester,RequestsLister,RequestAccepter,RequestDeleter,HistoryLister,UsersLister,TransactionsLister

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Insufficient balance
	Error string `json:"error"`

	// Request field the error refers to, if any
	// example: amount
	Field string `json:"field,omitempty"`

	// Machine readable error code
	// example: insufficient_balance
	Code string `json:"code,omitempty"`
}

// TransactionResponse is a transfer or request as shown to clients
// swagger:model TransactionResponse
type TransactionResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Kind          models.Kind     `json:"kind" example:"transfer"`
	Status        models.Status   `json:"status" example:"completed"`
	Request       bool            `json:"request"`
	PayerUsername string          `json:"payer_username" example:"alice"`
	PayerEmail    string          `json:"payer_email" example:"alice@example.com"`
	PayeeUsername string          `json:"payee_username" example:"bob"`
	PayeeEmail    string          `json:"payee_email" example:"bob@example.com"`
	Amount        string          `json:"amount" example:"40.00"`
	Currency      models.Currency `json:"currency" example:"USD"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func newTransactionResponse(txn models.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Kind:          txn.Kind,
		Status:        txn.Status,
		Request:       txn.IsRequest(),
		PayerUsername: txn.PayerUsername,
		PayerEmail:    txn.PayerEmail,
		PayeeUsername: txn.PayeeUsername,
		PayeeEmail:    txn.PayeeEmail,
		Amount:        txn.Amount.StringFixed(exchange.Places),
		Currency:      txn.Currency,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
}

func newTransactionsResponse(txns []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, newTransactionResponse(txn))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeFieldError(w http.ResponseWriter, field, code, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Field: field, Code: code})
}

// claimsFromRequest returns the claims set by the auth middleware or writes 401.
func claimsFromRequest(w http.ResponseWriter, r *http.Request) (*jwt.Claims, bool) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		logger.Log.Error("request without token claims")
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return claims, true
}

// writePaymentError maps payment service errors to responses.
func writePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		writeFieldError(w, "amount", "invalid_amount", "Amount must be positive with at most two decimal places")
	case errors.Is(err, services.ErrInsufficientBalance):
		writeFieldError(w, "amount", "insufficient_balance", "Insufficient balance")
	case errors.Is(err, services.ErrCurrencyMismatch):
		writeFieldError(w, "currency", "currency_mismatch", "Currency must match your account currency")
	case errors.Is(err, services.ErrRecipientNotFound):
		writeFieldError(w, "email", "recipient_not_found", "No account with this email")
	case errors.Is(err, services.ErrSelfPayment):
		writeFieldError(w, "email", "self_payment", "You cannot pay or request from yourself")
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "Request not found")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrAccountNotFound):
		writeError(w, http.StatusForbidden, "No account for this user")
	case errors.Is(err, txmanager.ErrConflict):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "Service busy, try again")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// requestIDParam parses the {id} path parameter or writes 404.
func requestIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Request not found")
		return uuid.Nil, false
	}
	return id, true
}
