package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// AccountService handles account business logic. It never touches an
// account's balance after creation; only the engine does that.
type AccountService struct {
	storage *storage.Storage
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage) *AccountService {
	return &AccountService{storage: store}
}

// CreateAccount creates a new account and returns the persisted record.
func (s *AccountService) CreateAccount(ctx context.Context, create account.AccountCreate) (*account.Account, error) {
	return s.storage.Accounts.Insert(ctx, &create)
}

// GetAccount retrieves an account owned by userID, or nil when absent.
func (s *AccountService) GetAccount(ctx context.Context, id, userID uuid.UUID) (*account.Account, error) {
	return s.storage.Accounts.FindOwned(ctx, id, userID)
}

// ListAccounts returns all of the user's accounts, newest first.
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	return s.storage.Accounts.List(ctx, userID)
}

// UpdateAccount changes name and/or type. Returns nil when the account does
// not exist for userID.
func (s *AccountService) UpdateAccount(ctx context.Context, id, userID uuid.UUID, update account.AccountUpdate) (*account.Account, error) {
	return s.storage.Accounts.Update(ctx, id, userID, &update)
}
