package transaction

import (
	"context"
	"time"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Transaction is the API response model for a ledger record.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	AccountID   string `json:"accountId" doc:"Account UUID"`
	CategoryID  string `json:"categoryId" doc:"Category UUID"`
	Type        string `json:"type" doc:"income or expense"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	Description string `json:"description,omitempty" doc:"Free-text description"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt   string `json:"updatedAt" doc:"RFC3339 last modification time"`
}

func fromRecord(record *transaction.Transaction) Transaction {
	return Transaction{
		ID:          record.ID.String(),
		AccountID:   record.AccountID.String(),
		CategoryID:  record.CategoryID.String(),
		Type:        string(record.Type),
		Amount:      record.Amount.String(),
		Description: record.Description,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   record.UpdatedAt.Format(time.RFC3339),
	}
}

// ledgerEngine is the interface for submitting actions to the engine.
type ledgerEngine interface {
	Process(ctx context.Context, action engine.IAction) error
}
