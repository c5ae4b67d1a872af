package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

// RequestsLister lists pending requests.
type RequestsLister interface {
	ListRequests(ctx context.Context, userID uuid.UUID) (*models.RequestsOverview, error)
}

// RequestAccepter pays pending requests.
type RequestAccepter interface {
	AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.AcceptResult, error)
}

// RequestDeleter withdraws pending requests.
type RequestDeleter interface {
	DeleteRequest(ctx context.Context, userID, requestID uuid.UUID) error
}

// RequestsResponse lists the caller's pending requests
// swagger:model RequestsResponse
type RequestsResponse struct {
	// Requests the caller made
	Sent []TransactionResponse `json:"sent"`

	// Requests addressed to the caller
	Received []TransactionResponse `json:"received"`

	// Request a previous accept failed on for lack of funds, shown once
	InsufficientBalance *uuid.UUID `json:"insufficient_balance"`
}

// AcceptResponse is the outcome of accepting a request
// swagger:model AcceptResponse
type AcceptResponse struct {
	RequestID uuid.UUID `json:"request_id"`
	Accepted  bool      `json:"accepted"`

	// Set to the request id when the balance did not cover it
	InsufficientBalance *uuid.UUID `json:"insufficient_balance,omitempty"`
}

// NewListRequestsHandler returns an HTTP handler listing pending requests.
// @Summary List pending requests
// @Description Requests sent and received by the caller, newest first
// @Tags requests
// @Produce json
// @Success 200 {object} handlers.RequestsResponse "Pending requests"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /requests [get]
// @Security BearerAuth
func NewListRequestsHandler(svc RequestsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		overview, err := svc.ListRequests(r.Context(), claims.UserID)
		if err != nil {
			writePaymentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RequestsResponse{
			Sent:                newTransactionsResponse(overview.Sent),
			Received:            newTransactionsResponse(overview.Received),
			InsufficientBalance: overview.InsufficientBalanceID,
		})
	}
}

// NewAcceptRequestHandler returns an HTTP handler that pays a request.
// @Summary Accept a request
// @Description Pays a pending request addressed to the caller. A short balance is reported in the body, not as an error.
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} handlers.AcceptResponse "Outcome"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not the payer of this request"
// @Failure 404 {object} handlers.ErrorResponse "Request not found or no longer pending"
// @Failure 503 {object} handlers.ErrorResponse "Concurrent update conflict, retry"
// @Router /requests/{id}/accept [post]
// @Security BearerAuth
func NewAcceptRequestHandler(svc RequestAccepter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}
		requestID, ok := requestIDParam(w, r)
		if !ok {
			return
		}

		result, err := svc.AcceptRequest(r.Context(), claims.UserID, requestID)
		if err != nil {
			writePaymentError(w, err)
			return
		}

		resp := AcceptResponse{RequestID: result.RequestID, Accepted: result.Accepted}
		if result.InsufficientBalance {
			resp.InsufficientBalance = &result.RequestID
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewDeleteRequestHandler returns an HTTP handler that withdraws a request.
// @Summary Delete a request
// @Description Withdraws a pending request. Either participant may delete it; deleting twice succeeds.
// @Tags requests
// @Param id path string true "Request ID"
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not a participant"
// @Failure 404 {object} handlers.ErrorResponse "Request not found"
// @Router /requests/{id} [delete]
// @Security BearerAuth
func NewDeleteRequestHandler(svc RequestDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}
		requestID, ok := requestIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteRequest(r.Context(), claims.UserID, requestID); err != nil {
			writePaymentError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
