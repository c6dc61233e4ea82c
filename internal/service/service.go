package service

import (
	"github.com/carson-networks/finance-server/internal/storage"
)

// Service holds all business logic services. Balance-affecting mutations
// are deliberately absent: those go through the engine.
type Service struct {
	Account     *AccountService
	Category    *CategoryService
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Account:     NewAccountService(store),
		Category:    NewCategoryService(store),
		Transaction: NewTransactionService(store),
	}
}
