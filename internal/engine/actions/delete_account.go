package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/storage"
)

// DeleteAccount removes an account, but only while no ledger records
// reference it. Deleting an account out from under its transactions would
// orphan them, so the check and the delete share one transaction.
type DeleteAccount struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

func (a *DeleteAccount) Name() string { return "delete_account" }

func (a *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := writer.Accounts.FindOwnedForUpdate(ctx, a.AccountID, a.UserID)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: account not found", engine.ErrNotFound)
	}

	hasRecords, err := writer.Transactions.ExistsForAccount(ctx, a.AccountID)
	if err != nil {
		return err
	}
	if hasRecords {
		return fmt.Errorf("%w: account still has transactions", engine.ErrConflict)
	}

	if _, err := writer.Accounts.Delete(ctx, a.AccountID, a.UserID); err != nil {
		return err
	}
	return nil
}
