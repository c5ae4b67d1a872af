package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
	"github.com/sbilibin2017/gw-p2p-payments/internal/services"
)

// PaymentSender sends money to another account.
type PaymentSender interface {
	SendPayment(ctx context.Context, userID uuid.UUID, recipientEmail string, amount decimal.Decimal, currency *models.Currency) (*models.Transaction, error)
}

// PaymentRequester asks another account for money.
type PaymentRequester interface {
	RequestPayment(ctx context.Context, userID uuid.UUID, payerEmail string, amount decimal.Decimal) (*models.Transaction, error)
}

// SendPaymentRequest represents the JSON body of a payment
// swagger:model SendPaymentRequest
type SendPaymentRequest struct {
	// Email of the receiving user
	// required: true
	Email string `json:"email" example:"bob@example.com"`

	// Amount in the sender's currency, at most two decimal places
	// required: true
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"40.00"`

	// Optional, must equal the sender's account currency
	Currency string `json:"currency,omitempty" example:"USD"`
}

// RequestPaymentRequest represents the JSON body of a payment request
// swagger:model RequestPaymentRequest
type RequestPaymentRequest struct {
	// Email of the user asked to pay
	// required: true
	Email string `json:"email" example:"alice@example.com"`

	// Amount in the requester's currency, at most two decimal places
	// required: true
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"25.00"`
}

// NewSendPaymentHandler returns an HTTP handler that transfers money.
// @Summary Send a payment
// @Description Debits the caller and credits the recipient, converted into the recipient's currency
// @Tags payments
// @Accept json
// @Produce json
// @Param sendPaymentRequest body handlers.SendPaymentRequest true "Payment"
// @Success 200 {object} handlers.TransactionResponse "Completed transfer"
// @Failure 400 {object} handlers.ErrorResponse "Field error: invalid_email, invalid_amount, insufficient_balance, recipient_not_found, currency_mismatch, self_payment"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 503 {object} handlers.ErrorResponse "Concurrent update conflict, retry"
// @Router /payments/send [post]
// @Security BearerAuth
func NewSendPaymentHandler(svc PaymentSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req SendPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		email, ok := parseEmailField(w, req.Email)
		if !ok {
			return
		}

		var currency *models.Currency
		if req.Currency != "" {
			c, err := models.ParseCurrency(req.Currency)
			if err != nil {
				writeFieldError(w, "currency", "invalid_currency", "Currency must be one of USD, EUR, GBP")
				return
			}
			currency = &c
		}

		txn, err := svc.SendPayment(r.Context(), claims.UserID, email, req.Amount, currency)
		if err != nil {
			writePaymentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionResponse(*txn))
	}
}

// NewRequestPaymentHandler returns an HTTP handler that requests money.
// @Summary Request a payment
// @Description Records a pending request, in the caller's currency, for the given user to accept
// @Tags payments
// @Accept json
// @Produce json
// @Param requestPaymentRequest body handlers.RequestPaymentRequest true "Payment request"
// @Success 200 {object} handlers.TransactionResponse "Pending request"
// @Failure 400 {object} handlers.ErrorResponse "Field error: invalid_email, invalid_amount, recipient_not_found, self_payment"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 503 {object} handlers.ErrorResponse "Concurrent update conflict, retry"
// @Router /payments/request [post]
// @Security BearerAuth
func NewRequestPaymentHandler(svc PaymentRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req RequestPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		email, ok := parseEmailField(w, req.Email)
		if !ok {
			return
		}

		txn, err := svc.RequestPayment(r.Context(), claims.UserID, email, req.Amount)
		if err != nil {
			writePaymentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionResponse(*txn))
	}
}

// parseEmailField validates a payer or recipient email or writes a field error.
func parseEmailField(w http.ResponseWriter, raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		writeFieldError(w, "email", "required", "Email is required")
		return "", false
	}
	email, err := services.ParseEmail(raw)
	if err != nil {
		writeFieldError(w, "email", "invalid_email", "Invalid email address")
		return "", false
	}
	return email, true
}
