package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// TransactionService serves the ledger's read side. It only ever returns
// committed state; all writes go through the engine.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// GetTransaction retrieves one ledger record scoped to its owner and
// account, or nil when no such record exists.
func (s *TransactionService) GetTransaction(ctx context.Context, id, userID, accountID uuid.UUID) (*transaction.Transaction, error) {
	return s.storage.Transactions.FindOwned(ctx, id, userID, accountID)
}

// ListTransactions returns the user's ledger records matching the filter,
// newest first. A category filter naming a category the user does not own
// is dropped rather than erroring, matching the account-scoped reads the
// frontend performs.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, error) {
	if filter.CategoryID != nil {
		owned, err := s.storage.Categories.FindOwned(ctx, *filter.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if owned == nil {
			filter.CategoryID = nil
		}
	}

	return s.storage.Transactions.List(ctx, userID, &filter)
}
