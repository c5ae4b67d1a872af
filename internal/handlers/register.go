package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
	"github.com/sbilibin2017/gw-p2p-payments/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, email string, currency models.Currency) (*models.Account, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Account currency, one of USD, EUR, GBP
	// required: true
	// default: GBP
	Currency string `json:"currency"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// default: User registered successfully
	Message string `json:"message"`

	// The account opened for the user
	Account AccountResponse `json:"account"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user and its single-currency account funded with the initial grant. Username and email must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Username or email already exists / invalid request"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		switch {
		case req.Username == "":
			writeFieldError(w, "username", "required", "Username is required")
			return
		case req.Password == "":
			writeFieldError(w, "password", "required", "Password is required")
			return
		}

		currency, err := models.ParseCurrency(req.Currency)
		if err != nil {
			writeFieldError(w, "currency", "invalid_currency", "Currency must be one of USD, EUR, GBP")
			return
		}

		account, err := svc.Register(r.Context(), req.Username, req.Password, req.Email, currency)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, "Username or email already exists")
			case errors.Is(err, services.ErrInvalidEmail):
				writeFieldError(w, "email", "invalid_email", "Invalid email address")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Message: "User registered successfully",
			Account: newAccountResponse(account),
		})
	}
}
