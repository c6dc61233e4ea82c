package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// DeleteTransaction reverses a ledger record's effect on its account and
// removes the record, as one atomic unit. Reversal is never blocked by a
// balance floor: deleting an expense only ever pushes the balance up.
type DeleteTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	AccountID     uuid.UUID

	// Populated on success.
	NewBalance decimal.Decimal
}

func (a *DeleteTransaction) Name() string { return "delete_transaction" }

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	record, err := writer.Transactions.FindOwned(ctx, a.TransactionID, a.UserID, a.AccountID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: transaction not found", engine.ErrNotFound)
	}

	account, err := writer.Accounts.FindOwnedForUpdate(ctx, a.AccountID, a.UserID)
	if err != nil {
		return err
	}
	if account == nil {
		return engine.ErrForbidden
	}

	newBalance := account.Balance.Add(record.Amount)
	if record.Type == transaction.FlowIncome {
		newBalance = account.Balance.Sub(record.Amount)
	}

	if err := writer.Accounts.UpdateBalance(ctx, a.AccountID, newBalance); err != nil {
		return err
	}
	deleted, err := writer.Transactions.Delete(ctx, record.ID)
	if err != nil {
		return err
	}
	if !deleted {
		// A concurrent delete removed the record after our read. Fail the
		// action so the balance reversal above rolls back instead of
		// applying a second time against nothing.
		return fmt.Errorf("%w: transaction not found", engine.ErrNotFound)
	}

	a.NewBalance = newBalance
	return nil
}
