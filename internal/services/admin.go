package services

import (
	"context"
	"iter"

	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
)

//go:generate mockgen -source=admin.go -destination=mock_admin_test.go -package=services

// UserLister lists users with their accounts.
type UserLister interface {
	List(ctx context.Context) ([]models.UserSummary, error)
}

// TransactionLister lists transactions matching a filter.
type TransactionLister interface {
	List(ctx context.Context, filter models.TransactionFilter) iter.Seq2[models.Transaction, error]
}

// AdminService serves the staff listings.
type AdminService struct {
	users        UserLister
	transactions TransactionLister
}

// NewAdminService creates a new AdminService.
func NewAdminService(users UserLister, transactions TransactionLister) *AdminService {
	return &AdminService{users: users, transactions: transactions}
}

// ListAllUsers returns every user, staff included.
func (s *AdminService) ListAllUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// ListAllTransactions returns every transaction that is not an outstanding
// request, most recently updated first.
func (s *AdminService) ListAllTransactions(ctx context.Context) ([]models.Transaction, error) {
	pending := false
	txns, err := collect(s.transactions.List(ctx, models.TransactionFilter{Pending: &pending}))
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "error", err)
		return nil, err
	}
	return txns, nil
}
