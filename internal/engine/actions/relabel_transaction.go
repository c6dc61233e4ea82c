package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// RelabelTransaction swaps a ledger record's category. Amount, type, and
// account are immutable after creation, so no balance mutation happens
// here. The new category must carry the record's own type: relabeling an
// expense as income would silently desync the account balance.
type RelabelTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	AccountID     uuid.UUID
	CategoryID    *uuid.UUID

	// Populated on success.
	Updated *transaction.Transaction
}

func (a *RelabelTransaction) Name() string { return "relabel_transaction" }

func (a *RelabelTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	var newType string
	if a.CategoryID != nil {
		category, err := writer.Categories.FindOwned(ctx, *a.CategoryID, a.UserID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: invalid category", engine.ErrNotFound)
		}
		newType = string(category.Type)
	}

	record, err := writer.Transactions.FindOwned(ctx, a.TransactionID, a.UserID, a.AccountID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: transaction not found", engine.ErrNotFound)
	}

	if a.CategoryID != nil {
		if newType != string(record.Type) {
			return engine.TypeMismatch(newType, string(record.Type))
		}
		updated, err := writer.Transactions.UpdateCategory(ctx, record.ID, *a.CategoryID)
		if err != nil {
			return err
		}
		if !updated {
			// Record vanished between our read and the update, so nothing
			// was relabeled.
			return fmt.Errorf("%w: transaction not found", engine.ErrNotFound)
		}
		record.CategoryID = *a.CategoryID
	}

	a.Updated = record
	return nil
}
