package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/account"
)

// Account is the API response model for an account.
type Account struct {
	ID        string `json:"id" doc:"Account UUID"`
	Name      string `json:"name" doc:"Account name"`
	Type      string `json:"type" doc:"savings, current, credit, cash, investment, loan, or other"`
	Balance   string `json:"balance" doc:"Decimal balance, never negative"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 last modification time"`
}

func fromRecord(record *account.Account) Account {
	return Account{
		ID:        record.ID.String(),
		Name:      record.Name,
		Type:      string(record.Type),
		Balance:   record.Balance.String(),
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.Format(time.RFC3339),
	}
}

// accountService is the interface the handlers need from the service layer.
type accountService interface {
	CreateAccount(ctx context.Context, create account.AccountCreate) (*account.Account, error)
	GetAccount(ctx context.Context, id, userID uuid.UUID) (*account.Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
	UpdateAccount(ctx context.Context, id, userID uuid.UUID, update account.AccountUpdate) (*account.Account, error)
}
